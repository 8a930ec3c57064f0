// services/weather_service.go
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"

	"lawncare-backend/utils"
)

// WeatherReport is the trimmed-down view of the upstream weather payload.
// Notice is non-empty when the upstream call failed and placeholder data is
// being served instead.
type WeatherReport struct {
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feelsLike"`
	Humidity    int     `json:"humidity"`
	WindSpeed   int     `json:"windSpeed"`
	Icon        string  `json:"icon"`
	City        string  `json:"city,omitempty"`
	Date        string  `json:"date,omitempty"`
	Notice      string  `json:"notice,omitempty"`
}

var weatherHTTP = &http.Client{Timeout: 10 * time.Second}

func weatherBaseURL() string {
	if base := os.Getenv("WEATHER_API_URL"); base != "" {
		return base
	}
	return "https://api.openweathermap.org/data/2.5"
}

func weatherAPIKey() string {
	if key := os.Getenv("WEATHER_API_KEY"); key != "" {
		return key
	}
	return "demo"
}

type openWeatherEntry struct {
	Dt      int64 `json:"dt"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

type openWeatherForecast struct {
	List []openWeatherEntry `json:"list"`
}

func fetchWeatherJSON(path string, query url.Values, out interface{}) error {
	query.Set("appid", weatherAPIKey())
	resp, err := weatherHTTP.Get(weatherBaseURL() + path + "?" + query.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetCurrentWeather returns current conditions for a US zip code, falling
// back to placeholder data when the upstream API is unreachable.
func GetCurrentWeather(zipCode string) *WeatherReport {
	var data openWeatherEntry
	query := url.Values{}
	query.Set("zip", zipCode+",US")
	query.Set("units", "imperial")

	if err := fetchWeatherJSON("/weather", query, &data); err != nil || len(data.Weather) == 0 {
		log.Printf("Weather API error for zip %s: %v", zipCode, err)
		return placeholderWeather("")
	}

	return &WeatherReport{
		Condition:   data.Weather[0].Main,
		Description: data.Weather[0].Description,
		Temperature: int(math.Round(data.Main.Temp)),
		FeelsLike:   int(math.Round(data.Main.FeelsLike)),
		Humidity:    data.Main.Humidity,
		WindSpeed:   int(math.Round(data.Wind.Speed)),
		Icon:        data.Weather[0].Icon,
		City:        data.Name,
	}
}

// GetWeatherForecast picks the forecast entry closest to noon on the given
// date for the zip code's location.
func GetWeatherForecast(date, zipCode string) *WeatherReport {
	var current openWeatherEntry
	query := url.Values{}
	query.Set("zip", zipCode+",US")

	if err := fetchWeatherJSON("/weather", query, &current); err != nil {
		log.Printf("Weather API error for zip %s: %v", zipCode, err)
		return placeholderWeather(date)
	}

	var forecast openWeatherForecast
	query = url.Values{}
	query.Set("lat", fmt.Sprintf("%f", current.Coord.Lat))
	query.Set("lon", fmt.Sprintf("%f", current.Coord.Lon))
	query.Set("units", "imperial")

	if err := fetchWeatherJSON("/forecast", query, &forecast); err != nil || len(forecast.List) == 0 {
		log.Printf("Weather forecast API error for zip %s: %v", zipCode, err)
		return placeholderWeather(date)
	}

	target, err := time.Parse("2006-01-02", date)
	if err != nil {
		return placeholderWeather(date)
	}
	target = target.Add(12 * time.Hour)

	closest := forecast.List[0]
	smallest := time.Duration(math.MaxInt64)
	for _, entry := range forecast.List {
		diff := time.Unix(entry.Dt, 0).Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff < smallest {
			smallest = diff
			closest = entry
		}
	}

	if len(closest.Weather) == 0 {
		return placeholderWeather(date)
	}

	return &WeatherReport{
		Condition:   closest.Weather[0].Main,
		Description: closest.Weather[0].Description,
		Temperature: int(math.Round(closest.Main.Temp)),
		FeelsLike:   int(math.Round(closest.Main.FeelsLike)),
		Humidity:    closest.Main.Humidity,
		WindSpeed:   int(math.Round(closest.Wind.Speed)),
		Icon:        closest.Weather[0].Icon,
		Date:        time.Unix(closest.Dt, 0).UTC().Format(time.RFC3339),
	}
}

func placeholderWeather(date string) *WeatherReport {
	report := &WeatherReport{
		Condition:   "Clear",
		Description: "Weather data temporarily unavailable",
		Temperature: 75,
		FeelsLike:   75,
		Humidity:    50,
		WindSpeed:   5,
		Icon:        "01d",
		Notice:      "Using placeholder data - weather API unavailable",
	}
	if date != "" {
		report.Date = date
	} else {
		report.Date = utils.Now().UTC().Format(time.RFC3339)
	}
	return report
}
