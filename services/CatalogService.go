package services

import (
	"strings"

	"github.com/Doneddie/kampala-closet/entities"
	"github.com/Doneddie/kampala-closet/models"
	"github.com/Doneddie/kampala-closet/repository"
)

// knownCategories drives the filter sidebar; counts are filled in from the
// unfiltered catalog so they stay stable while a filter is active.
var knownCategories = []entities.CategoryFacet{
	{Id: entities.CategoryAll, Name: "All Products"},
	{Id: "dresses", Name: "Dresses"},
	{Id: "tops", Name: "Tops"},
	{Id: "bottoms", Name: "Bottoms"},
	{Id: "accessories", Name: "Accessories"},
	{Id: "shoes", Name: "Shoes"},
	{Id: "outerwear", Name: "Outerwear"},
}

// FilterProducts applies the search, category and price predicates as a
// conjunction and returns the matching subsequence in the input order. It is
// pure and total: empty criteria fields relax their predicate, an inverted
// price range just matches nothing.
func FilterProducts(products []entities.Product, criteria entities.FilterCriteria) []entities.Product {
	filtered := []entities.Product{}
	term := strings.ToLower(criteria.Search)
	for _, p := range products {
		if term != "" {
			inName := strings.Contains(strings.ToLower(p.Name), term)
			inDescription := p.Description != "" && strings.Contains(strings.ToLower(p.Description), term)
			if !inName && !inDescription {
				continue
			}
		}
		if criteria.Category != entities.CategoryAll && p.Category != criteria.Category {
			continue
		}
		if p.Price.LessThan(criteria.PriceMin) || p.Price.GreaterThan(criteria.PriceMax) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// CategoryFacets counts every known category over the unfiltered collection;
// the "all" facet always carries the full collection size.
func CategoryFacets(products []entities.Product) []entities.CategoryFacet {
	perCategory := map[string]int{}
	for _, p := range products {
		perCategory[p.Category]++
	}
	facets := make([]entities.CategoryFacet, 0, len(knownCategories))
	for _, c := range knownCategories {
		if c.Id == entities.CategoryAll {
			c.Count = len(products)
		} else {
			c.Count = perCategory[c.Id]
		}
		facets = append(facets, c)
	}
	return facets
}

type CatalogService struct {
	pr repository.ProductRepository
}

func NewCatalogService(pRepo repository.ProductRepository) CatalogService {
	return CatalogService{
		pr: pRepo,
	}
}

// GetCatalog re-derives the filtered view from a fresh fetch of the full
// collection, never from a local cache.
func (cas *CatalogService) GetCatalog(criteria entities.FilterCriteria) (prods []entities.Product, err error) {
	all, e := cas.pr.GetAllProducts()
	if e != nil {
		err = e
		return
	}
	prods = FilterProducts(all, criteria)
	return
}

func (cas *CatalogService) GetFacets() (facets []entities.CategoryFacet, err error) {
	all, e := cas.pr.GetAllProducts()
	if e != nil {
		err = e
		return
	}
	facets = CategoryFacets(all)
	return
}

func (cas *CatalogService) GetProductById(prodId string) (prod entities.Product, err error) {
	prod, exists, err := cas.pr.GetProductById(prodId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	return
}

func (cas *CatalogService) GetFeaturedProducts(limit int) (prods []entities.Product, err error) {
	if limit <= 0 {
		limit = 6
	}
	prods, err = cas.pr.GetFeaturedProducts(limit)
	return
}

func (cas *CatalogService) CreateProduct(req models.ProductRequest) (newId string, err error) {
	newId, err = cas.pr.CreateProduct(req)
	return
}

func (cas *CatalogService) UpdateProductById(prodId string, req models.ProductRequest) (updated entities.Product, err error) {
	updated, err = cas.pr.UpdateProductById(prodId, req)
	return
}

func (cas *CatalogService) DeleteProductById(prodId string) (err error) {
	_, exists, e := cas.pr.GetProductById(prodId)
	if e != nil {
		err = e
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}
	err = cas.pr.DeleteProductById(prodId)
	return
}
