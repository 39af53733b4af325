package domain

// Category identifies one facility type used in proximity scoring.
type Category string

const (
	CategoryMRT        Category = "mrt"
	CategoryBus        Category = "bus"
	CategoryHawker     Category = "hawker"
	CategoryAttraction Category = "attraction"
	CategoryMoney      Category = "money"
	CategoryWifi       Category = "wifi"
)

// Categories is the closed set of scoring categories, in weight-table order.
var Categories = []Category{
	CategoryMRT, CategoryBus, CategoryHawker,
	CategoryAttraction, CategoryMoney, CategoryWifi,
}

type Hotel struct {
	Name         string               `json:"name"`
	OverallScore float64              `json:"overallScore"`
	Price        float64              `json:"price"`
	Lat          float64              `json:"latitude"`
	Lon          float64              `json:"longitude"`
	FilterScores map[Category]float64 `json:"filterScores"`
}

// ScoreByFilter returns the hotel's score for cat, 0 if the category was
// never scored (unknown categories included).
func (h *Hotel) ScoreByFilter(cat Category) float64 {
	return h.FilterScores[cat]
}

func (h *Hotel) SetFilterScore(cat Category, score float64) {
	if h.FilterScores == nil {
		h.FilterScores = make(map[Category]float64, len(Categories))
	}
	h.FilterScores[cat] = score
}

// Facility is an immutable point of interest belonging to exactly one category.
type Facility struct {
	Name string   `json:"name"`
	Type Category `json:"type"`
	Lat  float64  `json:"latitude"`
	Lon  float64  `json:"longitude"`
}

// CategoryParams configures one category in the scoring table:
// MaxKm is the distance beyond which the category scores 0,
// Weight is its share in the overall weighted sum.
type CategoryParams struct {
	MaxKm  float64
	Weight float64
}

// DefaultCategoryParams returns the production weight table (weights sum ~1.0).
func DefaultCategoryParams() map[Category]CategoryParams {
	return map[Category]CategoryParams{
		CategoryMRT:        {MaxKm: 1.5, Weight: 0.25},
		CategoryBus:        {MaxKm: 0.6, Weight: 0.20},
		CategoryHawker:     {MaxKm: 2.0, Weight: 0.15},
		CategoryAttraction: {MaxKm: 3.0, Weight: 0.15},
		CategoryMoney:      {MaxKm: 1.0, Weight: 0.15},
		CategoryWifi:       {MaxKm: 0.4, Weight: 0.10},
	}
}
