package rest

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophsocial/internal/server/models"
)

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

type followerResponse struct {
	User string    `json:"user"`
	Date time.Time `json:"date"`
}

// userResponse is the public view of a user; the password hash is never
// part of it.
type userResponse struct {
	ID        string             `json:"_id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Avatar    string             `json:"avatar"`
	Followers []followerResponse `json:"followers"`
	Date      time.Time          `json:"date"`
}

func newUserResponse(u *models.User) userResponse {
	followers := make([]followerResponse, 0, len(u.Followers))
	for _, f := range u.Followers {
		followers = append(followers, followerResponse{User: f.User, Date: f.Date})
	}
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Followers: followers,
		Date:      u.Date,
	}
}

type currentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody fills dst from a JSON or form-encoded body. Form fields are
// matched against dst's json tags. An empty body leaves dst untouched so the
// validator can report the missing fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return errMalformedBody
		}
		fields := make(map[string]string, len(r.PostForm))
		for k, v := range r.PostForm {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
		b, err := json.Marshal(fields)
		if err != nil {
			return errMalformedBody
		}
		if err := json.Unmarshal(b, dst); err != nil {
			return errMalformedBody
		}
		return nil
	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return errMalformedBody
		}
		return nil
	}
}
