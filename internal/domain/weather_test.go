package domain

import "testing"

func TestAssessWeather(t *testing.T) {
	warm := AssessWeather(Observation{
		City:        "Lisbon",
		Description: "clear sky",
		TempC:       22.5,
		Humidity:    60,
		WindKMH:     12.3,
	})
	if warm.Recommendation != "suitable_for_outdoor_activities" {
		t.Errorf("warm recommendation = %q", warm.Recommendation)
	}
	if warm.OverallCondition != "clear sky" {
		t.Errorf("condition = %q", warm.OverallCondition)
	}
	if warm.TemperatureRange != "22.5°C" {
		t.Errorf("temperature = %q", warm.TemperatureRange)
	}
	if warm.Humidity != "60%" {
		t.Errorf("humidity = %q", warm.Humidity)
	}
	if warm.WindConditions != "12.3 km/h" {
		t.Errorf("wind = %q", warm.WindConditions)
	}

	cold := AssessWeather(Observation{TempC: 15})
	if cold.Recommendation != "consider_indoor_alternatives" {
		t.Errorf("15°C is not above the outdoor cutoff: %q", cold.Recommendation)
	}
}
