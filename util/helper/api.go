package helper_util

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alcaldia-digital/ausentismo/api/model"
)

func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		return 0, 0, err
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

// ClampBoardPage normalizes dashboard paging: page floored at 1,
// limit clamped to [1, BoardMaxLimit] with the default applied when
// unset.
func ClampBoardPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = model.BoardDefaultLimit
	}
	if limit > model.BoardMaxLimit {
		limit = model.BoardMaxLimit
	}
	return page, limit
}

// PageCount is ceil(total/limit), never below 1.
func PageCount(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}
