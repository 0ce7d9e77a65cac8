package validator

import (
	"fmt"
	"slices"
	"strings"
)

func All(errors ...error) error {
	for _, err := range errors {
		if err != nil {
			return err
		}
	}
	return nil
}

func Map[T any](items []T, f func(T, string) error, description string) error {
	for i, item := range items {
		if err := f(item, fmt.Sprintf("%s[%d]", description, i)); err != nil {
			return err
		}
	}
	return nil
}

func NotEmpty(field, description string) error {
	if field == "" {
		return fmt.Errorf("%s must not be empty", description)
	}
	return nil
}

func HasElements[T any](slice []T, description string) error {
	if len(slice) == 0 {
		return fmt.Errorf("%s must contain at least one value", description)
	}
	return nil
}

func NoDuplicates[T comparable](slice []T, description string) error {
	seen := make(map[T]struct{})
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%s contains duplicate value: %v", description, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func MatchesAllowed[T comparable](field T, allowed []T, description string) error {
	if !slices.Contains(allowed, field) {
		return fmt.Errorf("%s must be one of %v, got %v", description, allowed, field)
	}
	return nil
}

// FileExtension accepts ".ext" style values without path separators.
func FileExtension(field, description string) error {
	if err := NotEmpty(field, description); err != nil {
		return err
	}
	if !strings.HasPrefix(field, ".") || len(field) == 1 {
		return fmt.Errorf("%s must start with a dot, got %q", description, field)
	}
	if strings.ContainsAny(field, `/\`) {
		return fmt.Errorf("%s must not contain path separators, got %q", description, field)
	}
	return nil
}
