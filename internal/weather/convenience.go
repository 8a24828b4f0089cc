package weather

import (
	"fmt"
	"strconv"
	"time"

	"github.com/i474232898/weather-route-assistant/internal/common"
)

const (
	assessWindow = 24 * time.Hour

	strongWindSpeed = 10.0 // m/s
	strongWindGust  = 14.0 // m/s

	maxCarWashScore    = 100
	penaltyPrecip      = 50
	penaltyAirPoor     = 30
	penaltyAirModerate = 15
	penaltyWind        = 10

	poorAQI     = 4
	moderateAQI = 3
)

var precipConditions = map[string]struct{}{
	"Rain":         {},
	"Drizzle":      {},
	"Thunderstorm": {},
	"Snow":         {},
}

// Rain and snow in Korean descriptions, then English.
var (
	precipKeywordsKR = []string{"비", "눈"}
	precipKeywordsEN = []string{"rain", "snow"}
)

// Assess scores car-wash desirability and recommends parking from the
// forecast slots up to now+24h, the current conditions and the air quality.
// current and air may be nil. It never fails.
func Assess(entries []ForecastEntry, current *Current, air *AirQuality, now time.Time) Assessment {
	until := now.Add(assessWindow)

	var willRain, strongWind bool
	for _, e := range entries {
		if e.Time.IsZero() || e.Time.After(until) {
			continue
		}
		if _, ok := precipConditions[e.Condition]; ok {
			willRain = true
		}
		if e.WindSpeed >= strongWindSpeed || e.WindGust >= strongWindGust {
			strongWind = true
		}
	}
	if current != nil {
		desc := current.Description
		if common.HasAny(desc, precipKeywordsKR...) || common.HasAnyFold(desc, precipKeywordsEN...) {
			willRain = true
		}
	}

	score := maxCarWashScore
	var reasons []string

	if willRain {
		score -= penaltyPrecip
		reasons = append(reasons, "rain or snow expected within 24h")
	}

	if air != nil && air.AQI != nil {
		switch aqi := *air.AQI; {
		case aqi >= poorAQI:
			score -= penaltyAirPoor
			reasons = append(reasons, "poor air quality"+pm25Suffix(air.PM25))
		case aqi == moderateAQI:
			score -= penaltyAirModerate
			reasons = append(reasons, "moderately poor air quality"+pm25Suffix(air.PM25))
		}
	}

	if strongWind {
		score -= penaltyWind
		reasons = append(reasons, "strong wind may blow dust onto the car")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "good weather for a car wash")
	}
	if score < 0 {
		score = 0
	}

	var parkReasons []string
	if willRain {
		parkReasons = append(parkReasons, "rain or snow possible")
	}
	if strongWind {
		parkReasons = append(parkReasons, "strong wind possible")
	}
	tip := TipOutdoor
	if len(parkReasons) > 0 {
		tip = TipIndoor
	} else {
		parkReasons = []string{"no concerns"}
	}

	return Assessment{
		CarWash: CarWash{Score: score, Reasons: reasons},
		Parking: Parking{Tip: tip, Reasons: parkReasons},
	}
}

func pm25Suffix(pm25 *float64) string {
	if pm25 == nil {
		return ""
	}
	return fmt.Sprintf(" (PM2.5 %sµg/m³)", strconv.FormatFloat(*pm25, 'f', -1, 64))
}
