package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/workshops/internal/logging"
	"github.com/dmitrijs2005/workshops/internal/server/forms"
	"github.com/dmitrijs2005/workshops/internal/server/models"
	"github.com/dmitrijs2005/workshops/internal/server/services"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	registrar Registrar
	sessions  Sessions
	profiles  ProfileEditor
	workshops WorkshopEditor
	logger    logging.Logger
}

func NewHandler(reg Registrar, s Sessions, p ProfileEditor, w WorkshopEditor, l logging.Logger) *Handler {
	return &Handler{
		registrar: reg,
		sessions:  s,
		profiles:  p,
		workshops: w,
		logger:    l.With("module", "http_handler"),
	}
}

type registerResponse struct {
	UserName               string    `json:"username"`
	ActivationKeyExpiresAt time.Time `json:"activation_key_expires_at"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var form services.RegistrationForm
	if err := decode(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.registrar.Register(r.Context(), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{UserName: res.UserName, ActivationKeyExpiresAt: res.KeyExpiresAt})
}

type loginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserName    string `json:"username"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.sessions.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: res.AccessToken, UserName: res.Account.UserName})
}

type profileResponse struct {
	UserName    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	IsActive    bool        `json:"is_active"`
	Institute   string      `json:"institute"`
	Department  string      `json:"department"`
	Position    string      `json:"position"`
	PhoneNumber string      `json:"phone_number"`
	Form        *forms.Form `json:"form"`
}

func newProfileResponse(a *models.Account, p *models.Profile) profileResponse {
	return profileResponse{
		UserName:    a.UserName,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		IsActive:    a.IsActive,
		Institute:   p.Institute,
		Department:  p.Department,
		Position:    string(p.Position),
		PhoneNumber: p.PhoneNumber,
		Form:        forms.NewProfileForm(a, p),
	}
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	a, p, err := h.profiles.Get(r.Context(), accountID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(a, p))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	values, err := decodeValues(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	a, p, err := h.profiles.Update(r.Context(), accountID(r.Context()), values)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(a, p))
}

type workshopTypeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days"`
}

func (h *Handler) ListWorkshopTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.workshops.ListTypes(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]workshopTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, workshopTypeResponse{ID: t.ID, Name: t.Name, Description: t.Description, DurationDays: t.DurationDays})
	}
	writeJSON(w, http.StatusOK, out)
}

type workshopResponse struct {
	ID             string    `json:"id"`
	WorkshopTypeID string    `json:"workshop_title"`
	Recurrences    string    `json:"recurrences"`
	CreatedAt      time.Time `json:"created_at"`
}

func newWorkshopResponse(ws *models.Workshop) workshopResponse {
	return workshopResponse{ID: ws.ID, WorkshopTypeID: ws.WorkshopTypeID, Recurrences: ws.Recurrences, CreatedAt: ws.CreatedAt}
}

func (h *Handler) CreateWorkshopForm(w http.ResponseWriter, r *http.Request) {
	f, err := h.workshops.CreateWorkshopForm(r.Context(), accountID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) CreateWorkshop(w http.ResponseWriter, r *http.Request) {
	values, err := decodeValues(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	ws, err := h.workshops.CreateWorkshop(r.Context(), accountID(r.Context()), values)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newWorkshopResponse(ws))
}

func (h *Handler) ListWorkshops(w http.ResponseWriter, r *http.Request) {
	list, err := h.workshops.ListWorkshops(r.Context(), accountID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]workshopResponse, 0, len(list))
	for _, ws := range list {
		out = append(out, newWorkshopResponse(ws))
	}
	writeJSON(w, http.StatusOK, out)
}

type proposalResponse struct {
	ID                   string `json:"id"`
	WorkshopTypeID       string `json:"proposed_workshop_title"`
	ProposedWorkshopDate string `json:"proposed_workshop_date"`
	Status               string `json:"status"`
}

func newProposalResponse(p *models.ProposeWorkshopDate) proposalResponse {
	return proposalResponse{
		ID:                   p.ID,
		WorkshopTypeID:       p.WorkshopTypeID,
		ProposedWorkshopDate: p.ProposedWorkshopDate.Format(forms.DateLayout),
		Status:               string(p.Status),
	}
}

func (h *Handler) ProposeDateForm(w http.ResponseWriter, r *http.Request) {
	f, err := h.workshops.ProposeDateForm(r.Context(), accountID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) ProposeDate(w http.ResponseWriter, r *http.Request) {
	values, err := decodeValues(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.workshops.ProposeDate(r.Context(), accountID(r.Context()), values)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProposalResponse(p))
}

func (h *Handler) ListProposals(w http.ResponseWriter, r *http.Request) {
	list, err := h.workshops.ListProposals(r.Context(), accountID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]proposalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, newProposalResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	return nil
}

// decodeValues reads a flat JSON object of form values. Booleans and numbers
// are turned into their string form; null means absent.
func decodeValues(r *http.Request) (map[string]string, error) {
	var raw map[string]any
	if err := decode(r, &raw); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			values[k] = v
		case bool:
			values[k] = strconv.FormatBool(v)
		case float64:
			values[k] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("%w: field %q must be a scalar", errBadRequestBody, k)
		}
	}
	return values, nil
}
