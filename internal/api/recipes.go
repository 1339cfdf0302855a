package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantrybot/internal/assistant"
	"pantrybot/internal/models"
)

func (s *Server) listRecipes(c *gin.Context) {
	var recipes []models.Recipe
	if err := s.db.Where("owner_id = ?", ownerID(c)).Order("id desc").Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type generateRecipeRequest struct {
	ItemIDs []uint `json:"itemIds" binding:"required"`
}

// generateRecipe builds a recipe from the user's selected pantry items and
// stores it.
func (s *Server) generateRecipe(c *gin.Context) {
	owner := ownerID(c)

	var req generateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var items []models.PantryItem
	if err := s.db.Where("owner_id = ? AND id IN (?)", owner, req.ItemIDs).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pantry items"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one pantry item"})
		return
	}

	ingredients := make([]string, len(items))
	for i, item := range items {
		ingredients[i] = item.Name
	}

	draft, err := assistant.GenerateRecipe(c.Request.Context(), s.provider, ingredients)
	if err != nil {
		log.Printf("recipe generation failed for user %s: %v", owner, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate recipe. Please try again."})
		return
	}

	recipe := models.Recipe{
		Title:        draft.Title,
		MinutesTakes: draft.MinutesTakes,
		Steps:        draft.Steps,
		Ingredients:  models.StringSlice(ingredients),
		OwnerID:      owner,
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (s *Server) deleteRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	result := s.db.Unscoped().Where("id = ? AND owner_id = ?", id, ownerID(c)).Delete(&models.Recipe{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
