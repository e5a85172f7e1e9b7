package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"maeumbaedal/internal/models"
	"maeumbaedal/internal/security"
	"maeumbaedal/internal/service"
	"maeumbaedal/internal/validation"
)

const onboardingSteps = 4

// OnboardingHandler drives the four-step setup wizard: who you are, who
// your parent is, what they like, and when questions should go out.
// Progress lives in a signed draft cookie until the final submit.
type OnboardingHandler struct {
	profileService *service.ProfileService
	draftSigner    *security.DraftSigner
	templates      *template.Template
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(profileService *service.ProfileService, draftSigner *security.DraftSigner, templates *template.Template) *OnboardingHandler {
	return &OnboardingHandler{
		profileService: profileService,
		draftSigner:    draftSigner,
		templates:      templates,
	}
}

// ShowStep renders the wizard at the draft's current step
func (h *OnboardingHandler) ShowStep(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Already onboarded users skip the wizard entirely
	profile, err := h.profileService.GetProfile(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load profile", err)
		return
	}
	if profile != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	draft := h.loadDraft(r)
	h.renderStep(w, draft, "")
}

// SubmitStep validates one wizard step, advances the draft cookie, and on
// the last step creates the profile.
func (h *OnboardingHandler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	draft := h.loadDraft(r)

	switch draft.Step {
	case 1:
		draft.ChildName = r.FormValue("child_name")
		if err := validation.ValidateName(draft.ChildName); err != nil {
			h.renderStep(w, draft, "이름을 2자 이상 입력해주세요")
			return
		}
	case 2:
		draft.ParentNickname = r.FormValue("parent_nickname")
		draft.ParentContact = r.FormValue("parent_contact")
		draft.Relationship = r.FormValue("relationship")
		if err := validation.ValidateName(draft.ParentNickname); err != nil {
			h.renderStep(w, draft, "부모님을 부르는 호칭을 입력해주세요")
			return
		}
		phone, err := validation.NormalizePhone(draft.ParentContact)
		if err != nil {
			h.renderStep(w, draft, "010으로 시작하는 휴대폰 번호를 입력해주세요")
			return
		}
		draft.ParentContact = phone
		if !models.ValidRelationship(draft.Relationship) {
			h.renderStep(w, draft, "부모님과의 관계를 선택해주세요")
			return
		}
	case 3:
		draft.Interests = r.Form["interests"]
		if err := validation.ValidateInterests(draft.Interests); err != nil {
			h.renderStep(w, draft, fmt.Sprintf("관심사는 최대 %d개까지 선택할 수 있어요", validation.MaxInterests))
			return
		}
	case 4:
		draft.PreferredTime = r.FormValue("preferred_time")
		if draft.PreferredTime != models.TimeMorning &&
			draft.PreferredTime != models.TimeAfternoon &&
			draft.PreferredTime != models.TimeEvening {
			h.renderStep(w, draft, "질문을 받을 시간을 선택해주세요")
			return
		}

		if _, err := h.profileService.CompleteOnboarding(user.ID, *draft); err != nil {
			if errors.Is(err, service.ErrProfileExists) {
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
				return
			}
			var verr validation.ValidationError
			if errors.As(err, &verr) {
				h.renderStep(w, draft, verr.Message)
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to complete onboarding", err)
			return
		}

		http.SetCookie(w, security.CreateDeleteCookie(r, security.DraftCookieName))
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	default:
		draft.Step = 1
		h.saveDraft(w, r, draft)
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	draft.Step++
	h.saveDraft(w, r, draft)
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}

// Back moves the wizard one step backwards, keeping entered values
func (h *OnboardingHandler) Back(w http.ResponseWriter, r *http.Request) {
	draft := h.loadDraft(r)
	if draft.Step > 1 {
		draft.Step--
		h.saveDraft(w, r, draft)
	}
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}

func (h *OnboardingHandler) loadDraft(r *http.Request) *security.OnboardingDraft {
	cookie, err := r.Cookie(security.DraftCookieName)
	if err == nil {
		if draft, err := h.draftSigner.Parse(cookie.Value); err == nil && draft.Step >= 1 && draft.Step <= onboardingSteps {
			return draft
		}
	}
	return &security.OnboardingDraft{Step: 1}
}

func (h *OnboardingHandler) saveDraft(w http.ResponseWriter, r *http.Request, draft *security.OnboardingDraft) {
	token, err := h.draftSigner.Sign(*draft)
	if err != nil {
		log.Printf("Failed to sign onboarding draft: %v", err)
		return
	}
	http.SetCookie(w, security.CreateSessionCookie(r, security.DraftCookieName, token, time.Now().Add(24*time.Hour)))
}

func (h *OnboardingHandler) renderStep(w http.ResponseWriter, draft *security.OnboardingDraft, errorMsg string) {
	selected := make(map[string]bool, len(draft.Interests))
	for _, interest := range draft.Interests {
		selected[interest] = true
	}

	data := map[string]interface{}{
		"Title":             "시작하기 - 마음배달",
		"Step":              draft.Step,
		"TotalSteps":        onboardingSteps,
		"Draft":             draft,
		"Error":             errorMsg,
		"Relationships":     models.RelationshipOptions,
		"InterestOptions":   validation.InterestOptions,
		"SelectedInterests": selected,
		"MaxInterests":      validation.MaxInterests,
	}

	if err := h.templates.ExecuteTemplate(w, "onboarding.tmpl", data); err != nil {
		log.Printf("Error rendering onboarding template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
