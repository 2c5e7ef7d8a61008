package dto

// KnowledgeAnswer is the normalized result shape every knowledge provider
// produces. A nil *KnowledgeAnswer means "no answer".
type KnowledgeAnswer struct {
	Source string         `json:"source"`
	Title  string         `json:"title"`
	Text   string         `json:"text"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// Wikipedia REST summary payload (the fields we read).
type WikipediaSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// DuckDuckGo Instant Answer payload (the fields we read).
type DuckDuckGoAnswer struct {
	Heading      string `json:"Heading"`
	AbstractText string `json:"AbstractText"`
}

// Nominatim geocoding result.
type GeocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Open-Meteo current weather payload.
type WeatherForecast struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

// Official Joke API payload.
type JokeAnswer struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// Advice Slip payload.
type AdviceAnswer struct {
	Slip struct {
		Advice string `json:"advice"`
	} `json:"slip"`
}

// TheMealDB search payload.
type RecipeSearchResult struct {
	Meals []RecipeMeal `json:"meals"`
}

type RecipeMeal struct {
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
}
