package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/dmitrijs2005/aycode/internal/server/auth"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/dmitrijs2005/aycode/internal/server/services"
)

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type userView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

type meResponse struct {
	User userView `json:"user"`
}

type problemSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

type problemView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type roleResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	_, err = s.users.Register(r.Context(), services.RegisterInput{
		Name:             f.get("name"),
		Email:            f.get("email"),
		Phone:            f.get("phonenumber", "phone"),
		DateOfBirth:      f.get("dateofbirth", "dateOfBirth"),
		Password:         f.get("password"),
		Gender:           f.get("gender"),
		SubscriptionPlan: f.get("subscription"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, messageResponse{Message: "User registered successfully"}, http.StatusCreated)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.users.Login(r.Context(), f.get("email"), f.get("password"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(res.Validity / time.Second),
		Expires:  res.ExpiresAt,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	s.writeJSON(w, r, loginResponse{Message: "Login successful", Username: res.Name}, http.StatusOK)
}

// handleLogout only clears the client's cookie; the token itself stays valid
// until it expires.
func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	s.writeJSON(w, r, messageResponse{Message: "Logged out successfully"}, http.StatusOK)
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	user, err := s.users.Profile(r.Context(), id.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, meResponse{User: userView{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    string(user.Role),
		IsAdmin: user.IsAdmin(),
	}}, http.StatusOK)
}

func (s *HTTPServer) handleListProblems(w http.ResponseWriter, r *http.Request) {
	items, err := s.problems.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]problemSummary, 0, len(items))
	for _, p := range items {
		out = append(out, problemSummary{ID: p.ID, Title: p.Title, Difficulty: p.Difficulty})
	}
	s.writeJSON(w, r, out, http.StatusOK)
}

func (s *HTTPServer) handleGetProblem(w http.ResponseWriter, r *http.Request) {
	p, err := s.problems.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, toProblemView(p), http.StatusOK)
}

func (s *HTTPServer) handleCreateProblem(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.problems.Create(r.Context(), services.CreateProblemInput{
		Title:       f.get("title"),
		Description: f.get("description"),
		Difficulty:  f.get("difficulty"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, toProblemView(p), http.StatusCreated)
}

func (s *HTTPServer) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	userID := r.PathValue("id")
	role := models.Role(f.get("role"))

	if err := s.users.ChangeRole(r.Context(), userID, role); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, roleResponse{ID: userID, Role: string(role)}, http.StatusOK)
}

func toProblemView(p *models.Problem) problemView {
	return problemView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Difficulty:  p.Difficulty,
		CreatedAt:   p.CreatedAt,
	}
}
