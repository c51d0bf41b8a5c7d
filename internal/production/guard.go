package production

import (
	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
)

// StatusChange is a partial update to one line item's department statuses.
// A nil field leaves the current value untouched.
type StatusChange struct {
	Frame   *enums.CutStatus
	Mesh    *enums.CutStatus
	Quality *enums.QualityStatus
}

// IsEmpty reports whether the change proposes nothing.
func (c StatusChange) IsEmpty() bool {
	return c.Frame == nil && c.Mesh == nil && c.Quality == nil
}

// The two fixed rejection reasons surfaced to callers.
const (
	ReasonFrozenAfterPacking = "cannot change frame or mesh status after packing"
	ReasonQualityNeedsCuts   = "quality requires frame and mesh cutting complete"
)

// AuthorizeStatusChange decides whether the actor may apply the proposed
// change to the item as it currently stands. Admins bypass every rule. For
// everyone else: a packed item's frame and mesh statuses are frozen, and
// quality may only advance past pending once the effective frame and mesh
// statuses (proposed value if present, else current) are both complete.
//
// Rejections are CodeStateConflict errors carrying one of the fixed reasons;
// they are expected outcomes, not failures.
func AuthorizeStatusChange(item models.OrderLineItem, change StatusChange, role enums.UserRole) error {
	if role.IsAdmin() {
		return nil
	}

	if item.QualityStatus == enums.QualityStatusPacked {
		frameChanges := change.Frame != nil && *change.Frame != item.FrameStatus
		meshChanges := change.Mesh != nil && *change.Mesh != item.MeshStatus
		if frameChanges || meshChanges {
			return pkgerrors.New(pkgerrors.CodeStateConflict, ReasonFrozenAfterPacking)
		}
	}

	if change.Quality != nil && *change.Quality != enums.QualityStatusPending {
		frame := item.FrameStatus
		if change.Frame != nil {
			frame = *change.Frame
		}
		mesh := item.MeshStatus
		if change.Mesh != nil {
			mesh = *change.Mesh
		}
		if frame != enums.CutStatusComplete || mesh != enums.CutStatusComplete {
			return pkgerrors.New(pkgerrors.CodeStateConflict, ReasonQualityNeedsCuts)
		}
	}

	return nil
}

// ApplyStatusChange writes the proposed fields onto the item. Callers run
// AuthorizeStatusChange first; this function does not re-check.
func ApplyStatusChange(item *models.OrderLineItem, change StatusChange) {
	if change.Frame != nil {
		item.FrameStatus = *change.Frame
	}
	if change.Mesh != nil {
		item.MeshStatus = *change.Mesh
	}
	if change.Quality != nil {
		item.QualityStatus = *change.Quality
	}
}
