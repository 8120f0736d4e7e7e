package domain

// Observation is a snapshot of current conditions for a city.
type Observation struct {
	City        string
	Description string
	TempC       float64
	FeelsLikeC  float64
	Humidity    int
	WindKMH     float64
	PressureHPA int
}

// ForecastDay is one day of a forecast.
type ForecastDay struct {
	Day       string
	TempC     float64
	Condition string
}

// Forecast is a short-horizon outlook for a city.
type Forecast struct {
	City string
	Days []ForecastDay
}

// WeatherAssessment is the planning view over raw conditions.
type WeatherAssessment struct {
	OverallCondition string
	TemperatureRange string
	Humidity         string
	WindConditions   string
	Recommendation   string
}

// AssessWeather derives the planning assessment the ReAct engine works from.
// Above 15°C conditions are considered suitable for outdoor activities.
func AssessWeather(obs Observation) WeatherAssessment {
	rec := "consider_indoor_alternatives"
	if obs.TempC > 15 {
		rec = "suitable_for_outdoor_activities"
	}

	return WeatherAssessment{
		OverallCondition: obs.Description,
		TemperatureRange: formatTempC(obs.TempC),
		Humidity:         formatPercent(obs.Humidity),
		WindConditions:   formatWindKMH(obs.WindKMH),
		Recommendation:   rec,
	}
}
