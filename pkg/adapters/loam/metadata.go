package loam

// DocumentMetadata is the part of a catalog document needed to list it.
// The full definition is decoded from the raw metadata on Get.
type DocumentMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Type string `json:"type" mapstructure:"type"`
	Name string `json:"name" mapstructure:"name"`
}
