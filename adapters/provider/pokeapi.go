package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/satriahrh/gerch/domain"
)

// PokeAPI looks up Pokémon by name or number.
type PokeAPI struct {
	base
}

func NewPokeAPI(opts ...Option) *PokeAPI {
	return &PokeAPI{base: newBase("https://pokeapi.co/api/v2", opts)}
}

type pokemonResponse struct {
	Name   string `json:"name"`
	Height int    `json:"height"` // decimetres
	Weight int    `json:"weight"` // hectograms
	Types  []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

func (p *PokeAPI) Creature(ctx context.Context, name string) (domain.Creature, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return domain.Creature{}, domain.ErrInvalidInput
	}

	var resp pokemonResponse
	if err := p.getJSON(ctx, "/pokemon/"+url.PathEscape(name), nil, &resp); err != nil {
		return domain.Creature{}, err
	}

	types := make([]string, 0, len(resp.Types))
	for _, t := range resp.Types {
		types = append(types, t.Type.Name)
	}
	return domain.Creature{
		Name:   resp.Name,
		Height: float64(resp.Height) / 10,
		Weight: float64(resp.Weight) / 10,
		Types:  types,
		Sprite: resp.Sprites.FrontDefault,
	}, nil
}
