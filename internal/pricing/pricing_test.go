package pricing

import (
	"errors"
	"testing"
)

func TestCalculateBase(t *testing.T) {
	est, err := Calculate(EstimateRequest{Service: "MSD Classic", Width: 4, Length: 5})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if est.Area != 20 {
		t.Fatalf("expected area 20, got %v", est.Area)
	}
	if est.BaseCost != 6400 {
		t.Fatalf("expected base cost 6400, got %v", est.BaseCost)
	}
	if est.Total != 6400 {
		t.Fatalf("expected total 6400, got %v", est.Total)
	}
}

func TestCalculateWithLightsAndDecor(t *testing.T) {
	est, err := Calculate(EstimateRequest{
		Service: "MSD Premium",
		Width:   3,
		Length:  4,
		Lights:  6,
		Decor:   true,
	})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if est.BaseCost != 12*350 {
		t.Fatalf("expected base cost %d, got %v", 12*350, est.BaseCost)
	}
	if est.LightCost != 6*300 {
		t.Fatalf("expected light cost %d, got %v", 6*300, est.LightCost)
	}
	if est.Perimeter != 14 {
		t.Fatalf("expected perimeter 14, got %v", est.Perimeter)
	}
	if est.DecorCost != 14*40 {
		t.Fatalf("expected decor cost %d, got %v", 14*40, est.DecorCost)
	}
	want := float64(12*350 + 6*300 + 14*40)
	if est.Total != want {
		t.Fatalf("expected total %v, got %v", want, est.Total)
	}
}

func TestCalculatePremiumTariff(t *testing.T) {
	est, err := Calculate(EstimateRequest{Service: "Bauf та Renolit", Width: 2, Length: 2})
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if est.BaseCost != 4*450 {
		t.Fatalf("expected base cost %d, got %v", 4*450, est.BaseCost)
	}
}

func TestCalculateUnknownService(t *testing.T) {
	if _, err := Calculate(EstimateRequest{Service: "Clipso", Width: 2, Length: 2}); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
}

func TestCalculateInvalidDimensions(t *testing.T) {
	if _, err := Calculate(EstimateRequest{Service: "MSD Classic", Width: 0, Length: 2}); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
	if _, err := Calculate(EstimateRequest{Service: "MSD Classic", Width: 2, Length: 2, Lights: -1}); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestServicesReturnsCopy(t *testing.T) {
	first := Services()
	first["MSD Classic"] = 1
	second := Services()
	if second["MSD Classic"] != 320 {
		t.Fatalf("Services must return a copy, tariff mutated to %d", second["MSD Classic"])
	}
}
