package providers

import (
	"github.com/samber/do/v2"

	"github.com/quillapp/quill-server/internal/auth"
	"github.com/quillapp/quill-server/internal/logger"
	"github.com/quillapp/quill-server/internal/markdown"
	"github.com/quillapp/quill-server/internal/service"
	"github.com/quillapp/quill-server/internal/validation"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	limiterHandle := do.MustInvoke[*LoginLimiterHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, limiterHandle.KeyedRateLimiter, v, log.Logger), nil
}

// ProvidePostService provides the post service.
func ProvidePostService(i do.Injector) (*service.PostService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	renderer := do.MustInvoke[*markdown.Renderer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPostService(storeHandle.Store, v, renderer, log.Logger), nil
}

// ProvideSiteService provides the site settings service.
func ProvideSiteService(i do.Injector) (*service.SiteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSiteService(storeHandle.Store, log.Logger), nil
}
