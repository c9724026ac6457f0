// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package avatar builds placeholder avatar URLs served by DiceBear.
package avatar

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	baseURL     = "https://api.dicebear.com/9.x"
	DefaultSize = 128
	seedLength  = 6
	seedLetters = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var ErrInvalidStyle = errors.New("invalid avatar style")

// Styles lists the DiceBear collections an avatar may be drawn from.
var Styles = []string{
	"adventurer",
	"adventurer-neutral",
	"avataaars",
	"avataaars-neutral",
	"big-ears",
	"big-ears-neutral",
	"big-smile",
	"bottts",
	"croodles",
	"croodles-neutral",
	"fun-emoji",
	"icons",
	"identicon",
	"initials",
	"lorelei",
	"lorelei-neutral",
	"micah",
	"miniavs",
	"notionists",
	"notionists-neutral",
	"open-peeps",
	"pixel-art",
	"pixel-art-neutral",
	"shapes",
	"thumbs",
}

// Colors is the pastel background palette, hex without "#".
var Colors = []string{
	"FFFFFF",
	"FAFAFA",
	"F4F4F4",
	"E8E8E8",
	"FFEFEF",
	"FFF8E1",
	"E3F2FD",
	"E8F5E9",
	"FFF3E0",
	"FCE4EC",
	"E1F5FE",
	"F9FBE7",
	"F5F5F5",
	"FFEBEE",
	"FFFDE7",
	"F3E5F5",
	"F1F8E9",
	"FBE9E7",
	"FFF9C4",
}

// Options configures a generated avatar. Zero values select defaults:
// a random seed, a random style and a 128px image.
// Radius is a percentage in 0..50; zero leaves corners square.
type Options struct {
	Seed            string
	Style           string
	Size            int
	BackgroundColor string
	Radius          int
}

// Generator builds avatar URLs. The same seed and style always produce
// the same URL.
type Generator struct {
	rnd func(n int) int
}

func NewGenerator() *Generator {
	return &Generator{rnd: rand.IntN}
}

// Generate returns the DiceBear SVG URL for opts.
func (g *Generator) Generate(opts Options) (string, error) {
	style := opts.Style
	if style == "" {
		style = Styles[g.rnd(len(Styles))]
	}
	if !slices.Contains(Styles, style) {
		return "", fmt.Errorf("%w %q, available styles: %s", ErrInvalidStyle, style, strings.Join(Styles, ", "))
	}

	seed := opts.Seed
	if seed == "" {
		seed = g.randomSeed()
	}

	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}

	params := url.Values{}
	params.Set("seed", seed)
	params.Set("size", strconv.Itoa(size))
	if opts.BackgroundColor != "" {
		params.Set("backgroundColor", strings.TrimPrefix(opts.BackgroundColor, "#"))
	}
	if opts.Radius > 0 {
		params.Set("radius", strconv.Itoa(opts.Radius))
	}

	return fmt.Sprintf("%s/%s/svg?%s", baseURL, style, params.Encode()), nil
}

// RandomColor picks a background color from [Colors].
func (g *Generator) RandomColor() string {
	return Colors[g.rnd(len(Colors))]
}

func (g *Generator) randomSeed() string {
	b := make([]byte, seedLength)
	for i := range b {
		b[i] = seedLetters[g.rnd(len(seedLetters))]
	}
	return string(b)
}
