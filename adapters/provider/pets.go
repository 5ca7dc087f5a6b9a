package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// DogCEO serves random dog pictures from dog.ceo.
type DogCEO struct {
	base
}

func NewDogCEO(opts ...Option) *DogCEO {
	return &DogCEO{base: newBase("https://dog.ceo/api", opts)}
}

type dogResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// RandomDog returns an image URL, narrowed to breed when it is not empty.
func (d *DogCEO) RandomDog(ctx context.Context, breed string) (string, error) {
	path := "/breeds/image/random"
	if breed = strings.ToLower(strings.TrimSpace(breed)); breed != "" {
		path = "/breed/" + url.PathEscape(breed) + "/images/random"
	}

	var resp dogResponse
	if err := d.getJSON(ctx, path, nil, &resp); err != nil {
		return "", err
	}
	if resp.Status != "success" || resp.Message == "" {
		return "", domain.ErrNotFound
	}
	return resp.Message, nil
}

// TheCatAPI serves random cat pictures.
type TheCatAPI struct {
	base
}

func NewTheCatAPI(opts ...Option) *TheCatAPI {
	return &TheCatAPI{base: newBase("https://api.thecatapi.com/v1", opts)}
}

func (c *TheCatAPI) RandomCat(ctx context.Context) (string, error) {
	var resp []struct {
		URL string `json:"url"`
	}
	if err := c.getJSON(ctx, "/images/search", nil, &resp); err != nil {
		return "", err
	}
	if len(resp) == 0 || resp[0].URL == "" {
		return "", domain.ErrNotFound
	}
	return resp[0].URL, nil
}

// Pets routes pet image requests to the dog or cat source.
type Pets struct {
	Dogs *DogCEO
	Cats *TheCatAPI
}

func (p Pets) PetImage(ctx context.Context, kind, breed string) (string, error) {
	if kind == "cat" {
		return p.Cats.RandomCat(ctx)
	}
	return p.Dogs.RandomDog(ctx, breed)
}
