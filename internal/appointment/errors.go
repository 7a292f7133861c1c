package appointment

import (
	"fmt"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

var ErrInvalidStatus = fmt.Errorf("%w: status must be Scheduled, Completed or Cancelled", db.ErrInvalidInput)
