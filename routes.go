package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	db2 "chargewatch/db"
	"chargewatch/exporter"
)

func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func GetStation(c *gin.Context) {
	station, err := db2.GetStationRecord(c.Request.Context(), dbDetails, c.Param("evse_id"))
	if err != nil {
		log.Errorf("GetStation: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if station == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}
	c.JSON(http.StatusOK, station)
}

func GetStationHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 10000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := db2.GetStationHistory(c.Request.Context(), dbDetails, c.Param("evse_id"), limit)
	if err != nil {
		log.Errorf("GetStationHistory: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func GetStats(c *gin.Context) {
	ingestStats, err := db2.GetIngestStats(dbDetails)
	if err != nil {
		log.Errorf("GetStats: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	statusStats, err := db2.GetStatusStats(dbDetails)
	if err != nil {
		log.Errorf("GetStats: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stations":       ingestStats.Stations,
		"placeholders":   ingestStats.Placeholders,
		"history_rows":   ingestStats.HistoryRows,
		"last_polled_at": ingestStats.LastPolledAt,
		"last_hour":      statusStats,
	})
}

type exportRequest struct {
	Table string `json:"table"`
	Path  string `json:"path"`
}

// PostExport writes a table to a CSV file on the server's filesystem. This is
// an operator utility, the moral equivalent of running `chargewatch export`.
func PostExport(c *gin.Context) {
	req := exportRequest{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !db2.ValidTableName(req.Table) || req.Path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table or path"})
		return
	}

	if err := exporter.ExportTable(c.Request.Context(), dbDetails, req.Table, req.Path); err != nil {
		log.Errorf("PostExport: %s", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "exported"})
}
