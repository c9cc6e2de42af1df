package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Doneddie/kampala-closet/entities"
	"github.com/Doneddie/kampala-closet/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type ProductRepository interface {
	GetAllProducts() (prods []entities.Product, err error)
	GetProductById(id string) (prod entities.Product, exists bool, err error)
	GetFeaturedProducts(limit int) (prods []entities.Product, err error)
	CreateProduct(req models.ProductRequest) (newId string, err error)
	UpdateProductById(id string, req models.ProductRequest) (updated entities.Product, err error)
	DeleteProductById(id string) (err error)
}

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepository(conn *sql.DB) (ProductRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &ProductRepo{
		db: conn,
	}, nil
}

const productColumns = "Id, Name, Description, Price, Category, Sizes, Colors, ImageUrl, Featured, InStock, CreatedDate"

func scanProduct(row interface{ Scan(dest ...any) error }) (pModel models.Product_db, err error) {
	err = row.Scan(&pModel.Id, &pModel.Name, &pModel.Description, &pModel.Price,
		&pModel.Category, &pModel.Sizes, &pModel.Colors, &pModel.ImageUrl,
		&pModel.Featured, &pModel.InStock, &pModel.CreatedDate)
	return
}

func toProductEntity(pModel models.Product_db) entities.Product {
	return entities.Product{
		Id:          pModel.Id,
		Name:        pModel.Name,
		Description: pModel.Description.String,
		Price:       pModel.Price,
		Category:    pModel.Category,
		Sizes:       pModel.Sizes,
		Colors:      pModel.Colors,
		ImageUrl:    pModel.ImageUrl.String,
		Featured:    pModel.Featured,
		InStock:     pModel.InStock,
		CreatedDate: pModel.CreatedDate,
	}
}

// GetAllProducts returns the full catalog newest-first. Filtering happens in
// memory on top of this ordered collection.
func (p *ProductRepo) GetAllProducts() (prods []entities.Product, err error) {
	rows, e := p.db.Query("SELECT " + productColumns + " FROM Products ORDER BY CreatedDate DESC")
	if e != nil {
		zap.S().Errorf("GetAllProducts: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		pModel, e := scanProduct(rows)
		if e != nil {
			zap.S().Errorf("GetAllProducts: %v", e)
			err = models.ErrServerError
			return
		}
		prods = append(prods, toProductEntity(pModel))
	}
	return
}

func (p *ProductRepo) GetProductById(id string) (prod entities.Product, exists bool, err error) {
	row := p.db.QueryRow("SELECT "+productColumns+" FROM Products WHERE Id = $1", id)
	pModel, e := scanProduct(row)
	if e != nil {
		if e == sql.ErrNoRows {
			return
		}
		zap.S().Errorf("GetProductById: %v", e)
		err = models.ErrServerError
		return
	}
	prod = toProductEntity(pModel)
	exists = true
	return
}

func (p *ProductRepo) GetFeaturedProducts(limit int) (prods []entities.Product, err error) {
	rows, e := p.db.Query("SELECT "+productColumns+" FROM Products WHERE Featured = true ORDER BY CreatedDate DESC LIMIT $1", limit)
	if e != nil {
		zap.S().Errorf("GetFeaturedProducts: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		pModel, e := scanProduct(rows)
		if e != nil {
			zap.S().Errorf("GetFeaturedProducts: %v", e)
			err = models.ErrServerError
			return
		}
		prods = append(prods, toProductEntity(pModel))
	}
	return
}

func (p *ProductRepo) CreateProduct(req models.ProductRequest) (newId string, err error) {
	if req.Name == "" || req.Category == "" {
		zap.S().Errorf("CreateProduct: name and category are required")
		err = models.ErrNotAllowed
		return
	}
	if req.Price == nil || req.Price.IsNegative() {
		zap.S().Errorf("CreateProduct: price field is invalid")
		err = models.ErrNotAllowed
		return
	}
	pModel := models.Product_db{
		Id:          uuid.NewString(),
		Name:        req.Name,
		Price:       *req.Price,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		CreatedDate: time.Now().UTC(),
	}
	if req.Description != nil {
		pModel.Description = sql.NullString{String: *req.Description, Valid: true}
	}
	if req.ImageUrl != nil {
		pModel.ImageUrl = sql.NullString{String: *req.ImageUrl, Valid: true}
	}
	if req.Featured != nil {
		pModel.Featured = *req.Featured
	}
	pModel.InStock = true
	if req.InStock != nil {
		pModel.InStock = *req.InStock
	}
	_, e := p.db.Exec("INSERT INTO Products ("+productColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		pModel.Id, pModel.Name, pModel.Description, pModel.Price, pModel.Category,
		pq.Array([]string(pModel.Sizes)), pq.Array([]string(pModel.Colors)),
		pModel.ImageUrl, pModel.Featured, pModel.InStock, pModel.CreatedDate)
	if e != nil {
		zap.S().Errorf("CreateProduct: %v", e)
		err = models.ErrServerError
		return
	}
	newId = pModel.Id
	return
}

func (p *ProductRepo) UpdateProductById(id string, req models.ProductRequest) (updated entities.Product, err error) {
	cur, ex, e := p.GetProductById(id)
	if e != nil {
		err = e
		return
	}
	if !ex {
		zap.S().Errorf("UpdateProductById: product does not exist")
		err = models.ErrNotAllowed
		return
	}

	if req.Name != "" {
		cur.Name = req.Name
	}
	if req.Category != "" {
		cur.Category = req.Category
	}
	if req.Description != nil {
		cur.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			zap.S().Errorf("UpdateProductById: price field is invalid")
			err = models.ErrNotAllowed
			return
		}
		cur.Price = *req.Price
	}
	if req.Sizes != nil {
		cur.Sizes = req.Sizes
	}
	if req.Colors != nil {
		cur.Colors = req.Colors
	}
	if req.ImageUrl != nil {
		cur.ImageUrl = *req.ImageUrl
	}
	if req.Featured != nil {
		cur.Featured = *req.Featured
	}
	if req.InStock != nil {
		cur.InStock = *req.InStock
	}

	_, e = p.db.Exec("UPDATE Products SET Name = $1, Description = $2, Price = $3, Category = $4, Sizes = $5, Colors = $6, ImageUrl = $7, Featured = $8, InStock = $9 WHERE Id = $10",
		cur.Name, sql.NullString{String: cur.Description, Valid: cur.Description != ""},
		cur.Price, cur.Category, pq.Array(cur.Sizes), pq.Array(cur.Colors),
		sql.NullString{String: cur.ImageUrl, Valid: cur.ImageUrl != ""},
		cur.Featured, cur.InStock, id)
	if e != nil {
		zap.S().Errorf("UpdateProductById: %v", e)
		err = models.ErrServerError
		return
	}
	updated = cur
	return
}

func (p *ProductRepo) DeleteProductById(id string) (err error) {
	_, e := p.db.Exec("DELETE FROM Products WHERE Id = $1", id)
	if e != nil {
		zap.S().Errorf("DeleteProductById: %v", e)
		err = models.ErrServerError
	}
	return
}
