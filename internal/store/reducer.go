package store

import (
	"time"

	"github.com/tbourn/go-news-client/internal/domain"
)

// Reduce is the root reducer: pure, total, side-effect free. It fans the
// action out to every slice reducer and recomposes the state. Slices never
// read each other, so each slice reducer is independently testable. Unknown
// actions flow through every switch untouched and the input state is
// returned unchanged.
func Reduce(s AppState, a Action, now time.Time) AppState {
	s.Auth = reduceAuth(s.Auth, a)
	s.Articles = reduceArticles(s.Articles, a, now)
	s.Tags = reduceTags(s.Tags, a, now)
	s.Categories = reduceCategories(s.Categories, a, now)
	s.Languages = reduceLanguages(s.Languages, a, now)
	s.UI = reduceUI(s.UI, a)
	return s
}

// reduceAuth drives the session state machine:
// LoggedOut → LoggingIn → (LoggedIn | LoginFailed), and LoggedIn → LoggedOut
// via the explicit logout action.
func reduceAuth(s AuthState, a Action) AuthState {
	switch act := a.(type) {
	case LoginRequested, RegisterRequested:
		s.Loading = true
		s.Error = ""
		return s

	case LoginSucceeded:
		token := act.Token
		if token == "" {
			// Current-user fetch: the bearer token in storage stays valid.
			token = s.Token
		}
		u := act.User
		return AuthState{
			User:            &u,
			Token:           token,
			IsAuthenticated: token != "",
			Loading:         false,
		}

	case LoginFailed:
		return AuthState{Error: act.Message}

	case LoggedOut:
		return AuthState{}

	case RegisterSucceeded:
		s.Loading = false
		s.Error = ""
		return s

	case RegisterFailed:
		s.Loading = false
		s.Error = act.Message
		return s

	case UserUpdated:
		u := act.User
		s.User = &u
		return s
	}
	return s
}

func articleID(a domain.Article) uint { return a.ID }

func reduceArticles(s ArticlesState, a Action, now time.Time) ArticlesState {
	switch act := a.(type) {
	case ArticlesRequested:
		s.Collection = s.Collection.requested()
	case ArticlesFetched:
		s.Collection = s.Collection.fetched(act.Page, act.Gen, now)
	case ArticlesFetchFailed:
		s.Collection = s.Collection.fetchFailed(act.Message, act.Gen)
	case ArticleRequested:
		s.Collection = s.Collection.currentRequested()
	case ArticleFetched:
		s.Collection = s.Collection.currentFetched(act.Article, act.Gen)
	case ArticleFetchFailed:
		s.Collection = s.Collection.fetchFailed(act.Message, act.Gen)
	case ArticleSaveRequested:
		s.Collection = s.Collection.busy()
	case ArticleCreated:
		s.Collection = s.Collection.created(act.Article)
	case ArticleUpdated:
		s.Collection = s.Collection.updated(act.Article, act.Article.ID, articleID)
	case ArticleDeleted:
		s.Collection = s.Collection.removed(act.ID, articleID)
	case ArticleSaveFailed:
		s.Collection = s.Collection.failed(act.Message)
	case ArticleFiltersSet:
		s.Filters = s.Filters.merge(act.Filters)
		// New filters invalidate the current page position.
		s.Pagination.Page = 1
	}
	return s
}

func tagID(t domain.Tag) uint { return t.ID }

func reduceTags(s TagsState, a Action, now time.Time) TagsState {
	switch act := a.(type) {
	case TagsRequested:
		s.Collection = s.Collection.requested()
	case TagsFetched:
		s.Collection = s.Collection.fetched(act.Page, act.Gen, now)
	case TagsFetchFailed:
		s.Collection = s.Collection.fetchFailed(act.Message, act.Gen)
	case TagSaveRequested:
		s.Collection = s.Collection.busy()
	case TagCreated:
		s.Collection = s.Collection.created(act.Tag)
	case TagUpdated:
		s.Collection = s.Collection.updated(act.Tag, act.Tag.ID, tagID)
	case TagDeleted:
		s.Collection = s.Collection.removed(act.ID, tagID)
	case TagSaveFailed:
		s.Collection = s.Collection.failed(act.Message)
	}
	return s
}

func categoryID(c domain.Category) uint { return c.ID }

func reduceCategories(s CategoriesState, a Action, now time.Time) CategoriesState {
	switch act := a.(type) {
	case CategoriesRequested:
		s.Collection = s.Collection.requested()
	case CategoriesFetched:
		s.Collection = s.Collection.fetched(act.Page, act.Gen, now)
	case CategoriesFetchFailed:
		s.Collection = s.Collection.fetchFailed(act.Message, act.Gen)
	case CategorySaveRequested:
		s.Collection = s.Collection.busy()
	case CategoryCreated:
		s.Collection = s.Collection.created(act.Category)
	case CategoryUpdated:
		s.Collection = s.Collection.updated(act.Category, act.Category.ID, categoryID)
	case CategoryDeleted:
		s.Collection = s.Collection.removed(act.ID, categoryID)
	case CategorySaveFailed:
		s.Collection = s.Collection.failed(act.Message)
	}
	return s
}

func reduceLanguages(s LanguagesState, a Action, now time.Time) LanguagesState {
	switch act := a.(type) {
	case LanguagesRequested:
		s.Loading = true
		s.Error = ""
		s.Generation++
	case LanguagesFetched:
		if act.Gen != s.Generation {
			return s
		}
		list := act.List
		if list == nil {
			list = []domain.Language{}
		}
		s.List = list
		s.Loading = false
		s.Error = ""
		s.LastFetched = now
	case LanguagesFetchFailed:
		if act.Gen != s.Generation {
			return s
		}
		s.Loading = false
		s.Error = act.Message
	case LanguageSet:
		s.Current = act.Code
	}
	return s
}
