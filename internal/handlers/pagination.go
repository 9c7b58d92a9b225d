package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/silverhawkjr11/Driving-Instructor-Assitant/internal/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// parseListPage reads page/limit query params and clamps them to the allowed
// window, returning the resulting offset alongside.
func parseListPage(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit = c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit, (page - 1) * limit
}

func buildPaginationMeta(page, limit, total int) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
