// controllers/weather.go
package controllers

import (
	"net/http"

	"lawncare-backend/services"
	"lawncare-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetCurrentWeather returns current conditions for a service area zip.
// A provider outage yields placeholder data flagged as such, never a 500.
func GetCurrentWeather(c *gin.Context) {
	zipCode := c.Param("zipCode")
	if !utils.ValidateZipCode(zipCode) {
		utils.RespondWithError(c, http.StatusBadRequest, "A valid 5-digit zip code is required")
		return
	}

	report := services.GetCurrentWeather(zipCode)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// GetWeatherForecast returns the forecast for a scheduling date.
func GetWeatherForecast(c *gin.Context) {
	zipCode := c.Param("zipCode")
	if !utils.ValidateZipCode(zipCode) {
		utils.RespondWithError(c, http.StatusBadRequest, "A valid 5-digit zip code is required")
		return
	}

	date := c.Param("date")
	if !utils.ValidateISODate(date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}

	report := services.GetWeatherForecast(date, zipCode)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}
