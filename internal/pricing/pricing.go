package pricing

import "errors"

// Tariffs in UAH. Base price is per square meter of ceiling; light
// points are flat per fixture; the decorative insert runs along the room
// perimeter.
const (
	LightPointCost    = 300
	DecorCostPerMeter = 40
)

var tariffs = map[string]int{
	"MSD Classic":    320,
	"MSD Premium":    350,
	"Bauf та Renolit": 450,
}

var (
	ErrUnknownService    = errors.New("unknown service")
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

type EstimateRequest struct {
	Service string  `json:"service" validate:"required"`
	Width   float64 `json:"width" validate:"required,gt=0"`
	Length  float64 `json:"length" validate:"required,gt=0"`
	Lights  int     `json:"lights" validate:"gte=0"`
	Decor   bool    `json:"decor"`
}

type Estimate struct {
	Service   string  `json:"service"`
	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`
	BaseCost  float64 `json:"base_cost"`
	LightCost float64 `json:"light_cost"`
	DecorCost float64 `json:"decor_cost"`
	Total     float64 `json:"total"`
}

// Services lists the available tariffs for the public calculator UI.
func Services() map[string]int {
	out := make(map[string]int, len(tariffs))
	for name, price := range tariffs {
		out[name] = price
	}
	return out
}

func Calculate(req EstimateRequest) (Estimate, error) {
	price, ok := tariffs[req.Service]
	if !ok {
		return Estimate{}, ErrUnknownService
	}
	if req.Width <= 0 || req.Length <= 0 || req.Lights < 0 {
		return Estimate{}, ErrInvalidDimensions
	}

	area := req.Width * req.Length
	perimeter := (req.Width + req.Length) * 2

	est := Estimate{
		Service:   req.Service,
		Area:      area,
		Perimeter: perimeter,
		BaseCost:  area * float64(price),
		LightCost: float64(req.Lights) * LightPointCost,
	}
	if req.Decor {
		est.DecorCost = perimeter * DecorCostPerMeter
	}
	est.Total = est.BaseCost + est.LightCost + est.DecorCost
	return est, nil
}
