package constants

import "github.com/feral-file/ff-rights-ledger/internal/api/shared/types"

const (
	MAX_PAGE_SIZE              = uint8(255)
	DEFAULT_OFFSET             = uint64(0)
	DEFAULT_EVENTS_LIMIT       = uint8(50)
	DEFAULT_LISTINGS_LIMIT     = uint8(50)
	DEFAULT_EVENTS_ORDER       = types.OrderAsc
	DEFAULT_RETRY_MAX_ATTEMPTS = 5
	MAX_RETRY_MAX_ATTEMPTS     = 10
	WEBHOOK_SECRET_BYTES       = 32
)
