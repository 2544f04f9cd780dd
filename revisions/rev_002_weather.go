package revisions

import "github.com/teranos/promptrev/prompt"

func init() {
	catalog = append(catalog, entry{
		id:          "002_add_weather_q",
		description: "add weather question prompt",
		transform:   migrate002AddWeatherQ,
	})
}

func migrate002AddWeatherQ(doc *prompt.Document) error {
	doc.Set("WEATHER_QUESTION", "What's the weather like today?")
	return nil
}
