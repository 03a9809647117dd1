package shopify

// OrderMetafieldsQuery fetches the first 10 metafields on an order.
// The two keys that drive billing are custom.additional_charges and
// custom.actual_total_checkout_price.
const OrderMetafieldsQuery = `
query getOrderMetafields($id: ID!) {
  order(id: $id) {
    id
    metafields(first: 10) {
      edges {
        node {
          namespace
          key
          value
          type
        }
      }
    }
  }
}
`

// OrderFulfillmentsQuery fetches an order's fulfillments with their line
// items, used to compute fulfilled revenue precisely (total amount / quantity
// gives the effective unit price after discounts).
const OrderFulfillmentsQuery = `
query getOrderFulfillments($id: ID!) {
  order(id: $id) {
    id
    fulfillments {
      status
      fulfillmentLineItems(first: 50) {
        edges {
          node {
            quantity
            originalTotalSet {
              shopMoney {
                amount
                currencyCode
              }
            }
          }
        }
      }
    }
  }
}
`

// OrderNodeQuery fetches an order by GID for the debug passthrough
const OrderNodeQuery = `
query getOrderByID($id: ID!) {
  node(id: $id) {
    ... on Order {
      id
      name
      displayFulfillmentStatus
      displayFinancialStatus
      createdAt
      totalPriceSet {
        shopMoney {
          amount
          currencyCode
        }
      }
      customer {
        id
        email
      }
      lineItems(first: 250) {
        edges {
          node {
            title
            quantity
            originalUnitPriceSet {
              shopMoney {
                amount
                currencyCode
              }
            }
          }
        }
      }
    }
  }
}
`

// CustomerOrdersQueryTemplate fetches recent orders for one customer.
// Note: the query parameter must be a string literal, not a variable, so the
// query string is built with fmt.Sprintf (e.g. "customer_id:123").
const CustomerOrdersQueryTemplate = `
query getCustomerOrders {
  orders(first: 20, query: "%s") {
    edges {
      node {
        id
        name
        createdAt
        displayFulfillmentStatus
        totalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
      }
    }
  }
}
`
