// Package services maps domain operations onto remote API endpoints. Each
// service is a thin, typed layer over the HTTP client adapter: it constructs
// paths and query strings, shapes payloads, and unwraps response envelopes.
// No caching, no state, no retries; those concerns live elsewhere.
//
// This file centralizes the API path layout so route changes touch one place.
package services

import "fmt"

const (
	pathLogin       = "/auth/login"
	pathRegister    = "/auth/register"
	pathCurrentUser = "/user"

	pathArticles   = "/articles"
	pathTags       = "/tags"
	pathCategories = "/categories"
	pathLanguages  = "/languages"

	pathAdminArticles   = "/admin/articles"
	pathAdminTags       = "/admin/tags"
	pathAdminCategories = "/admin/categories"
)

func articlePath(id uint) string       { return fmt.Sprintf("%s/%d", pathArticles, id) }
func articleSlugPath(s string) string  { return pathArticles + "/slug/" + s }
func tagPath(id uint) string           { return fmt.Sprintf("%s/%d", pathTags, id) }
func categoryPath(id uint) string      { return fmt.Sprintf("%s/%d", pathCategories, id) }
func languagePath(id uint) string      { return fmt.Sprintf("%s/%d", pathLanguages, id) }
func languageCodePath(c string) string { return pathLanguages + "/code/" + c }

func adminArticlePath(id uint) string  { return fmt.Sprintf("%s/%d", pathAdminArticles, id) }
func adminTagPath(id uint) string      { return fmt.Sprintf("%s/%d", pathAdminTags, id) }
func adminCategoryPath(id uint) string { return fmt.Sprintf("%s/%d", pathAdminCategories, id) }
