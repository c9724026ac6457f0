// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	maxUsernameLength     = 30
	minUsernameLength     = 3
	maxUsernameAttempts   = 100
	usernameSuffixCeiling = 1000
)

var (
	usernameAdjectives = []string{"Cool", "Pro", "Dev", "Ace", "Top", "Star", "Best", "Good", "Super", "Mega"}

	usernameDisallowed    = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	usernameLeadingNonAlp = regexp.MustCompile(`^[^a-zA-Z]+`)
)

// usernameGenerator derives a free username from an email address.
type usernameGenerator struct {
	exists func(ctx context.Context, username string) (bool, error)
	rnd    func(n int) int
	now    func() time.Time
}

func newUsernameGenerator(exists func(ctx context.Context, username string) (bool, error)) *usernameGenerator {
	return &usernameGenerator{exists: exists, rnd: rand.IntN, now: time.Now}
}

// Generate tries, in order: the cleaned email local part, the local part
// prefixed with an adjective, the local part with a random numeric
// suffix, and finally a suffix taken from the clock.
func (g *usernameGenerator) Generate(ctx context.Context, email string) (string, error) {
	base := baseUsername(email)

	if ok, err := g.available(ctx, base); err != nil || ok {
		return base, err
	}

	for _, adjective := range usernameAdjectives {
		candidate := adjective + "_" + base
		if len(candidate) > maxUsernameLength {
			continue
		}
		if ok, err := g.available(ctx, candidate); err != nil || ok {
			return candidate, err
		}
	}

	for range maxUsernameAttempts {
		candidate := base + "_" + strconv.Itoa(g.rnd(usernameSuffixCeiling))
		if len(candidate) > maxUsernameLength {
			continue
		}
		if ok, err := g.available(ctx, candidate); err != nil || ok {
			return candidate, err
		}
	}

	millis := strconv.FormatInt(g.now().UnixMilli(), 10)
	return truncate(base+"_"+millis[len(millis)-4:], maxUsernameLength), nil
}

func (g *usernameGenerator) available(ctx context.Context, username string) (bool, error) {
	exists, err := g.exists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return !exists, nil
}

func baseUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = usernameDisallowed.ReplaceAllString(local, "")
	local = usernameLeadingNonAlp.ReplaceAllString(local, "")

	if len(local) < minUsernameLength {
		local = "user" + local
	}
	return truncate(local, maxUsernameLength)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
