package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"tour-package-service/internal/api/dto"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/services"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type PackageHandler struct {
	Service *services.PackageService
	// Used when the request does not set branch_and_bound.
	DefaultBranchAndBound bool
	DefaultPolicy         string
}

// Generate runs a package optimization for one region.
func (h *PackageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PackageRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	bnb := h.DefaultBranchAndBound
	if req.BranchAndBound != nil {
		bnb = *req.BranchAndBound
	}
	policy := req.Policy
	if policy == "" {
		policy = h.DefaultPolicy
	}

	res, err := h.Service.Generate(r.Context(), services.PackageRequest{
		RegionID:       req.RegionID,
		MaxDays:        req.MaxDays,
		MaxBudget:      req.MaxBudget,
		Policy:         policy,
		BranchAndBound: bnb,
	})
	if errors.Is(err, services.ErrInvalidArgument) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("req_id=%s generate package failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPackageResponse(res))
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "RegionID":
		return "region_id is required"
	case "MaxDays":
		return "max_days must be non-negative"
	case "MaxBudget":
		return "max_budget must be non-negative"
	case "Policy":
		return "policy must be one of: max, sum"
	default:
		return "invalid field " + fe.Field()
	}
}
