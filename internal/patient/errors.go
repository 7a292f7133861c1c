package patient

import (
	"fmt"

	"github.com/WailSalutem-Health-Care/clinic-records/internal/db"
)

var (
	ErrInvalidGender    = fmt.Errorf("%w: gender must be Male, Female or Other", db.ErrInvalidInput)
	ErrInvalidBloodType = fmt.Errorf("%w: blood type must be one of A+, A-, B+, B-, AB+, AB-, O+, O-", db.ErrInvalidInput)
)
