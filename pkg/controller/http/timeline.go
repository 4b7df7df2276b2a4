package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cvforge/chronicle/pkg/domain/model"
	"github.com/cvforge/chronicle/pkg/domain/types"
	"github.com/cvforge/chronicle/pkg/usecase"
	"github.com/cvforge/chronicle/pkg/utils/errutil"
)

var validate = validator.New()

type workExperienceRequest struct {
	Company      string   `json:"company" validate:"required"`
	Position     string   `json:"position" validate:"required"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
	Location     string   `json:"location"`
	Logo         string   `json:"logo" validate:"omitempty,url"`
}

type educationRequest struct {
	Institution    string `json:"institution" validate:"required"`
	Degree         string `json:"degree" validate:"required"`
	Field          string `json:"field"`
	StartDate      string `json:"startDate"`
	GraduationDate string `json:"graduationDate"`
	Location       string `json:"location"`
}

type certificationRequest struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer" validate:"required"`
	Date   string `json:"date"`
	URL    string `json:"url" validate:"omitempty,url"`
}

// generateRequest is the inbound CV payload. Skills stays untyped because
// source CVs carry either a flat list or a map of category to list.
type generateRequest struct {
	Experience     []workExperienceRequest `json:"experience" validate:"dive"`
	Education      []educationRequest      `json:"education" validate:"dive"`
	Certifications []certificationRequest  `json:"certifications" validate:"dive"`
	Achievements   []string                `json:"achievements"`
	Skills         any                     `json:"skills"`
}

func (req *generateRequest) toCV() *model.CV {
	cv := &model.CV{
		Achievements: req.Achievements,
		Skills:       model.TechnicalSkills(req.Skills),
	}
	for _, exp := range req.Experience {
		cv.Experience = append(cv.Experience, model.WorkExperience{
			Company:      exp.Company,
			Position:     exp.Position,
			StartDate:    exp.StartDate,
			EndDate:      exp.EndDate,
			Description:  exp.Description,
			Achievements: exp.Achievements,
			Technologies: exp.Technologies,
			Location:     exp.Location,
			Logo:         exp.Logo,
		})
	}
	for _, edu := range req.Education {
		cv.Education = append(cv.Education, model.Education{
			Institution:    edu.Institution,
			Degree:         edu.Degree,
			Field:          edu.Field,
			StartDate:      edu.StartDate,
			GraduationDate: edu.GraduationDate,
			Location:       edu.Location,
		})
	}
	for _, cert := range req.Certifications {
		cv.Certifications = append(cv.Certifications, model.Certification{
			Name:   cert.Name,
			Issuer: cert.Issuer,
			Date:   cert.Date,
			URL:    cert.URL,
		})
	}
	return cv
}

// validationMessages flattens validator errors into field-level messages
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, strings.ToLower(fe.Namespace())+": failed on '"+fe.Tag()+"'")
	}
	return msgs
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck // header already committed
}

func generateTimelineHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		JobID    string              `json:"jobId"`
		Timeline *model.TimelineData `json:"timeline"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		jobID := types.JobID(chi.URLParam(r, "jobID"))

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode CV payload"), http.StatusBadRequest)
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "invalid CV payload",
				"fields": validationMessages(err),
			})
			return
		}

		data, err := uc.Timeline.Generate(r.Context(), jobID, req.toCV())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response{
			JobID:    jobID.String(),
			Timeline: data,
		})
	}
}

func getTimelineHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := types.JobID(chi.URLParam(r, "jobID"))

		record, err := uc.Timeline.Get(r.Context(), jobID)
		if err != nil {
			if errors.Is(err, usecase.ErrTimelineNotFound) {
				http.Error(w, "timeline not found", http.StatusNotFound)
				return
			}
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, record)
	}
}

func validateTimelineHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Valid    bool     `json:"valid"`
		Errors   []string `json:"errors,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var data model.TimelineData
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode timeline payload"), http.StatusBadRequest)
			return
		}

		result, err := uc.Timeline.Validate(r.Context(), &data)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response{
			Valid:    result.Valid(),
			Errors:   result.Errors,
			Warnings: result.Warnings,
		})
	}
}
