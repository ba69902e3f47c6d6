package catalog

// Seed is a predefined catalog entry reconciled into the content table at
// startup. The id is assigned by the catalog and stable across releases.
type Seed struct {
	ID       int64  `yaml:"id"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}
