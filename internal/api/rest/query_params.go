package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-rights-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-rights-ledger/internal/api/shared/types"
)

// EventHistoryQueryParams holds query parameters for GET /tokens/:id/history
type EventHistoryQueryParams struct {
	Limit  uint8       `form:"limit,default=50"`
	Offset uint64      `form:"offset,default=0"`
	Order  types.Order `form:"order,default=asc"`
}

// ListQueryParams holds pagination query parameters for list endpoints
type ListQueryParams struct {
	Limit  uint8  `form:"limit,default=50"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseEventHistoryQuery parses query parameters for GET /tokens/:id/history.
// The limit field is uint8 so values past the page-size ceiling fail binding.
func ParseEventHistoryQuery(c *gin.Context) (*EventHistoryQueryParams, error) {
	var params EventHistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Validate order
	if !params.Order.Asc() && !params.Order.Desc() {
		params.Order = constants.DEFAULT_EVENTS_ORDER
	}

	return &params, nil
}

// ParseListQuery parses pagination query parameters for list endpoints
func ParseListQuery(c *gin.Context) (*ListQueryParams, error) {
	var params ListQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	return &params, nil
}
