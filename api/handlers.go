package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cataloginfra "salesapi/internal/catalog/infrastructure"
	"salesapi/internal/ingest"
	salesapp "salesapi/internal/sales/application"
	"salesapi/internal/shared/domain"
)

// Handler façade HTTP: traduit les verbes et chemins vers le coeur et
// les issues du coeur vers des codes de statut. Aucune logique métier.
type Handler struct {
	Families    *cataloginfra.FamilyRepository
	Products    *cataloginfra.ProductRepository
	Ingest      *ingest.Service
	Aggregation *salesapp.AggregationService

	// répertoire de staging des uploads (défaut os.TempDir)
	TmpDir string
}

// Register branche les routes sur le routeur
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/load-data/", h.LoadData)
	r.GET("/product/:id", h.GetProduct)
	r.PUT("/product/:id", h.UpdateProduct)
	r.GET("/product/:id/sales/last-year", h.GetProductSalesLastYear)
	r.POST("/family/:id/product/", h.AddProductToFamily)
	r.GET("/family/:id", h.GetFamily)
}

// LoadData reçoit un fichier multipart, le dépose dans un fichier
// temporaire et lance l'ingestion. Violation d'intégrité: 400;
// toute autre erreur (fichier illisible compris): 500.
func (h *Handler) LoadData(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	tmpDir := h.TmpDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	location := filepath.Join(tmpDir, "upload-"+uuid.NewString()+filepath.Ext(file.Filename))

	if err := c.SaveUploadedFile(file, location); err != nil {
		log.Printf("api: saving upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}
	defer os.Remove(location)

	if _, err := h.Ingest.LoadFile(location); err != nil {
		log.Printf("api: loading data: %v", err)
		if domain.IsIntegrityViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Duplicate key error: The product ID already exists in the database.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Data loaded successfully",
	})
}

// GetProduct retourne un produit par son identifiant
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.Products.FindByID(id)
	if err != nil {
		serverError(c, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": product})
}

// UpdateProduct modifie le prix d'un produit (paramètre de requête
// "price")
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	price, err := strconv.ParseFloat(c.Query("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	updated, err := h.Products.UpdatePrice(id, price)
	if err != nil {
		serverError(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product updated successfully",
	})
}

// AddProductToFamily repointe un produit existant vers la famille du
// chemin (paramètre de requête "product_id")
func (h *Handler) AddProductToFamily(c *gin.Context) {
	familyID, ok := pathID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
		return
	}

	family, err := h.Families.FindByID(familyID)
	if err != nil {
		serverError(c, err)
		return
	}
	if family == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	moved, err := h.Products.ReassignFamily(productID, family.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	if !moved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product added to family successfully",
	})
}

// GetFamily retourne une famille par son identifiant
func (h *Handler) GetFamily(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	family, err := h.Families.FindByID(id)
	if err != nil {
		serverError(c, err)
		return
	}
	if family == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": family})
}

// GetProductSalesLastYear retourne le total des ventes du produit sur
// la dernière année. Jamais 404: un produit inconnu totalise 0.
func (h *Handler) GetProductSalesLastYear(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	total, err := h.Aggregation.TotalLastYear(id)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "total_sales": total})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func serverError(c *gin.Context, err error) {
	log.Printf("api: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
}
