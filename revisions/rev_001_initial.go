package revisions

import "github.com/teranos/promptrev/prompt"

func init() {
	catalog = append(catalog, entry{
		id:          "001_initial",
		description: "seed system prompt",
		transform:   migrate001Initial,
	})
}

// migrate001Initial adds the baseline system prompt.
func migrate001Initial(doc *prompt.Document) error {
	doc.Set("SYSTEM", "You are a helpful assistant.")
	return nil
}
