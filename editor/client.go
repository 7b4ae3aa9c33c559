package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/edikoyo/jamhub"
	"github.com/gofiber/fiber/v2"
)

var ErrUnauthorized = errors.New("editor: unauthorized")

// Profile is the settings endpoint's wire shape. Bio and the picture urls
// arrive as nulls when unset.
type Profile struct {
	Slug           string  `json:"slug"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
	BannerPicture  *string `json:"bannerPicture"`
}

type GetSelf = func(token string) (Profile, error)

type UpdateUser = func(token string, update jamhub.ProfileUpdate) (Profile, error)

type UploadImage = func(token string, filename string, content []byte) (url string, message string, err error)

// Client bundles the remote calls the editor session needs. Function fields
// so tests can swap a single call without a server.
type Client struct {
	GetSelf     GetSelf
	UpdateUser  UpdateUser
	UploadImage UploadImage
}

func NewRestClient(baseUrl string) Client {
	return Client{
		GetSelf:     RestGetSelf(baseUrl),
		UpdateUser:  RestUpdateUser(baseUrl),
		UploadImage: RestUploadImage(baseUrl),
	}
}

// Impl of jamhub rest api GET /self
func RestGetSelf(baseUrl string) GetSelf {
	return func(token string) (Profile, error) {
		agent := fiber.AcquireAgent()
		defer fiber.ReleaseAgent(agent)

		req := agent.Request()
		req.Header.SetMethod(fiber.MethodGet)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.SetRequestURI(baseUrl + "/self")

		err := agent.Parse()
		if err != nil {
			return Profile{}, fmt.Errorf("agent parse: %w", err)
		}

		statusCode, body, errs := agent.Bytes()
		if errs != nil {
			return Profile{}, fmt.Errorf("agent bytes: %v", errs)
		}
		if statusCode != fiber.StatusOK {
			if statusCode == fiber.StatusUnauthorized {
				return Profile{}, ErrUnauthorized
			}
			return Profile{}, fmt.Errorf("invalid status code %d: %s", statusCode, string(body))
		}

		var profile Profile
		if err = json.Unmarshal(body, &profile); err != nil {
			return Profile{}, fmt.Errorf("unmarshal body: %w", err)
		}
		return profile, nil
	}
}

// Impl of jamhub rest api PUT /users/{slug}
func RestUpdateUser(baseUrl string) UpdateUser {
	return func(token string, update jamhub.ProfileUpdate) (Profile, error) {
		agent := fiber.AcquireAgent()
		defer fiber.ReleaseAgent(agent)

		req := agent.Request()
		req.Header.SetMethod(fiber.MethodPut)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.SetRequestURI(baseUrl + "/users/" + url.PathEscape(update.Slug))

		type ReqBody struct {
			Slug           string `json:"slug"`
			Name           string `json:"name"`
			Bio            string `json:"bio"`
			ProfilePicture string `json:"profilePicture"`
			BannerPicture  string `json:"bannerPicture"`
		}
		reqBody, err := json.Marshal(ReqBody{
			Slug:           update.Slug,
			Name:           update.Name,
			Bio:            update.Bio,
			ProfilePicture: update.ProfilePicture,
			BannerPicture:  update.BannerPicture,
		})
		if err != nil {
			return Profile{}, fmt.Errorf("marshal body: %w", err)
		}
		req.SetBody(reqBody)

		err = agent.Parse()
		if err != nil {
			return Profile{}, fmt.Errorf("agent parse: %w", err)
		}

		statusCode, body, errs := agent.Bytes()
		if errs != nil {
			return Profile{}, fmt.Errorf("agent bytes: %v", errs)
		}
		if statusCode != fiber.StatusOK {
			if statusCode == fiber.StatusUnauthorized {
				return Profile{}, ErrUnauthorized
			}
			return Profile{}, fmt.Errorf("invalid status code %d: %s", statusCode, string(body))
		}

		var response struct {
			Data Profile `json:"data"`
		}
		if err = json.Unmarshal(body, &response); err != nil {
			return Profile{}, fmt.Errorf("unmarshal body: %w", err)
		}
		return response.Data, nil
	}
}

// Impl of jamhub rest api POST /image
func RestUploadImage(baseUrl string) UploadImage {
	return func(token string, filename string, content []byte) (string, string, error) {
		agent := fiber.AcquireAgent()
		defer fiber.ReleaseAgent(agent)

		req := agent.Request()
		req.Header.SetMethod(fiber.MethodPost)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		req.SetRequestURI(baseUrl + "/image")

		agent.FileData(&fiber.FormFile{
			Fieldname: "upload",
			Name:      filename,
			Content:   content,
		}).MultipartForm(nil)

		err := agent.Parse()
		if err != nil {
			return "", "", fmt.Errorf("agent parse: %w", err)
		}

		statusCode, body, errs := agent.Bytes()
		if errs != nil {
			return "", "", fmt.Errorf("agent bytes: %v", errs)
		}
		if statusCode != fiber.StatusCreated {
			if statusCode == fiber.StatusUnauthorized {
				return "", "", ErrUnauthorized
			}
			return "", "", fmt.Errorf("invalid status code %d: %s", statusCode, string(body))
		}

		var response struct {
			Data    string `json:"data"`
			Message string `json:"message"`
		}
		if err = json.Unmarshal(body, &response); err != nil {
			return "", "", fmt.Errorf("unmarshal body: %w", err)
		}
		return response.Data, response.Message, nil
	}
}
