package shopify

// MetafieldsSetMutation sets metafields on a resource (e.g. Order). Used by
// the seed-metafields tool to write billing figures onto test orders.
const MetafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      key
      namespace
      value
    }
    userErrors {
      field
      message
      code
    }
  }
}
`

// MetafieldsSetInput is used with the metafieldsSet mutation
type MetafieldsSetInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}
