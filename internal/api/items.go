package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantrybot/internal/assistant"
	"pantrybot/internal/models"
)

const topItemsCount = 5

// listItems returns the authenticated user's pantry with a running total.
func (s *Server) listItems(c *gin.Context) {
	var items []models.PantryItem
	if err := s.db.Where("owner_id = ?", ownerID(c)).Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pantry items"})
		return
	}

	var total float64
	for _, item := range items {
		total += item.Amount
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

type createItemRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount"`
}

func (s *Server) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := assistant.NormalizeName(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be non-negative"})
		return
	}

	item := models.PantryItem{
		Name:    name,
		Amount:  req.Amount,
		OwnerID: ownerID(c),
	}
	if err := s.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) deleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	// Hard delete; removal is permanent.
	result := s.db.Unscoped().Where("id = ? AND owner_id = ?", id, ownerID(c)).Delete(&models.PantryItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

// incrementItem raises an item's amount by one.
func (s *Server) incrementItem(c *gin.Context) {
	s.adjustItem(c, +1)
}

// decrementItem lowers an item's amount by one; an item at one or below is
// removed instead of being left at zero.
func (s *Server) decrementItem(c *gin.Context) {
	s.adjustItem(c, -1)
}

func (s *Server) adjustItem(c *gin.Context, delta float64) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var item models.PantryItem
	if err := s.db.Where("id = ? AND owner_id = ?", id, ownerID(c)).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if delta < 0 && item.Amount <= 1 {
		if err := s.db.Unscoped().Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
		return
	}

	item.Amount += delta
	if err := s.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// dashboardSummary aggregates the user's pantry for chart rendering: every
// item with its amount, the overall total, and the top items by amount.
func (s *Server) dashboardSummary(c *gin.Context) {
	var items []models.PantryItem
	if err := s.db.Where("owner_id = ?", ownerID(c)).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pantry items"})
		return
	}

	type slice struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
	}

	slices := make([]slice, len(items))
	var total float64
	for i, item := range items {
		slices[i] = slice{Name: item.Name, Amount: item.Amount}
		total += item.Amount
	}

	top := make([]slice, len(slices))
	copy(top, slices)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Amount > top[j].Amount })
	if len(top) > topItemsCount {
		top = top[:topItemsCount]
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"items":    slices,
		"topItems": top,
	})
}
