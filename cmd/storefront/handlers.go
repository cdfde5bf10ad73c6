package main

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/khattak-mart/internal/admin"
	"github.com/MikeMC777/khattak-mart/internal/auth"
	"github.com/MikeMC777/khattak-mart/internal/catalog"
	"github.com/MikeMC777/khattak-mart/internal/media"
	"github.com/MikeMC777/khattak-mart/internal/order"
	"github.com/MikeMC777/khattak-mart/internal/result"
	"github.com/MikeMC777/khattak-mart/internal/validation"
)

// render maps a workflow result onto an HTTP status.
func render[T any](c *gin.Context, okStatus int, res result.Result[T]) {
	status := okStatus
	switch res.Kind {
	case result.KindInvalid:
		status = http.StatusBadRequest
	case result.KindNotFound:
		status = http.StatusNotFound
	case result.KindConflict:
		status = http.StatusConflict
	case result.KindInternal:
		status = http.StatusInternalServerError
	}
	c.JSON(status, res)
}

// formUpload opens the named multipart file. A missing field yields nil.
func formUpload(c *gin.Context, field string) (*admin.Upload, multipart.File, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &admin.Upload{Filename: fh.Filename, Body: f}, f, nil
}

func checkbox(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// productInput reads the admin product form. Unparseable numbers become
// values the validator rejects.
func productInput(c *gin.Context) catalog.Input {
	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		price = decimal.Zero
	}
	stock, err := strconv.Atoi(strings.TrimSpace(c.PostForm("stock")))
	if err != nil {
		stock = -1
	}
	return catalog.Input{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Price:       price,
		Stock:       stock,
		Category:    c.PostForm("category"),
		ExpiryDate:  c.PostForm("expiryDate"),
		IsFeatured:  checkbox(c.PostForm("isFeatured")),
	}
}

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, "ok") }
}

// listCategoriesHandler godoc
// @Summary List product categories
// @Tags public
// @Produce json
// @Success 200 {array} catalog.Category
// @Router /categories [get]
func listCategoriesHandler(cats *catalog.Categories) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cats.List())
	}
}

// listProductsHandler godoc
// @Summary List products
// @Tags public
// @Produce json
// @Param category query string false "category id"
// @Param featured query bool false "featured only"
// @Success 200 {object} catalog.ListResponse
// @Router /products [get]
func listProductsHandler(view *catalog.Cached, cats *catalog.Categories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp := catalog.ListResponse{}
		var err error
		switch cat := c.Query("category"); {
		case cat != "":
			if _, ok := cats.Get(cat); !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			resp.Category = cat
			resp.Items, err = view.ByCategory(ctx, cat)
		case checkbox(c.Query("featured")):
			resp.Featured = true
			resp.Items, err = view.Featured(ctx)
		default:
			resp.Items, err = view.List(ctx)
		}
		if err != nil {
			logger.Error("list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if resp.Items == nil {
			resp.Items = []catalog.Product{}
		}
		c.JSON(http.StatusOK, resp)
	}
}

// getProductHandler godoc
// @Summary Get a product
// @Tags public
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func getProductHandler(view *catalog.Cached, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok, err := view.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			logger.Error("get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// checkoutHandler godoc
// @Summary Place an order
// @Tags public
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "customer name"
// @Param phone formData string true "03xxxxxxxxx"
// @Param address formData string true "delivery address"
// @Param paymentMethod formData string true "COD or Card"
// @Param cartItems formData string true "JSON array of cart items"
// @Param cartTotal formData string false "client side total"
// @Param paymentProof formData file false "payment screenshot, required for Card"
// @Success 201 {object} result.Result[order.Placed]
// @Failure 400 {object} result.Result[order.Placed]
// @Router /checkout [post]
func checkoutHandler(placement *order.Placement, images media.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		in := order.Checkout{
			Name:          strings.TrimSpace(c.PostForm("name")),
			Phone:         strings.TrimSpace(c.PostForm("phone")),
			Address:       strings.TrimSpace(c.PostForm("address")),
			PaymentMethod: order.PaymentMethod(c.PostForm("paymentMethod")),
		}
		verr := &validation.Error{}
		if raw := c.PostForm("cartItems"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &in.Items); err != nil {
				verr.Add("cartItems", "Invalid cart data.")
			}
		}
		if raw := strings.TrimSpace(c.PostForm("cartTotal")); raw != "" {
			total, err := decimal.NewFromString(raw)
			if err != nil {
				verr.Add("cartTotal", "Cart total must be a number.")
			}
			in.Total = total
		}
		if err := verr.OrNil(); err != nil {
			render(c, http.StatusCreated, result.Invalid[order.Placed](err))
			return
		}

		up, f, err := formUpload(c, "paymentProof")
		if err != nil {
			c.JSON(http.StatusBadRequest, result.Fail[order.Placed]("Invalid payment proof upload."))
			return
		}
		if f != nil {
			defer f.Close()
		}
		if up != nil && in.PaymentMethod == order.MethodCard {
			ref, err := images.Save(ctx, up.Filename, up.Body)
			switch {
			case errors.Is(err, media.ErrEmpty):
			case err != nil:
				logger.Error("store payment proof", zap.Error(err))
				render(c, http.StatusCreated, result.Fail[order.Placed]("Failed to place order."))
				return
			default:
				in.PaymentProofURL = ref
			}
		}

		res := placement.Place(ctx, in)
		if !res.Success && in.PaymentProofURL != "" {
			if err := images.Delete(ctx, in.PaymentProofURL); err != nil {
				logger.Warn("remove orphaned payment proof", zap.String("image", in.PaymentProofURL), zap.Error(err))
			}
		}
		render(c, http.StatusCreated, res)
	}
}

// getOrderHandler godoc
// @Summary Get an order
// @Tags public
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} order.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func getOrderHandler(repo order.Repository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, ok, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			logger.Error("get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// loginHandler godoc
// @Summary Start an admin session
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} result.Result[admin.Account]
// @Failure 401 {object} result.Result[admin.Account]
// @Router /admin/login [post]
func loginHandler(creds *auth.CredentialStore, sessions *auth.Sessions, secure bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, result.Fail[admin.Account]("Invalid request body."))
			return
		}
		ok, err := creds.Verify(strings.TrimSpace(req.Username), req.Password)
		if err != nil {
			logger.Error("verify credentials", zap.Error(err))
			c.JSON(http.StatusInternalServerError, result.Fail[admin.Account]("Login failed."))
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, result.Fail[admin.Account]("Invalid username or password."))
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.CookieName, sessions.Issue(), int(sessions.TTL().Seconds()), "/", "", secure, true)
		logger.Info("Admin logged in")
		c.JSON(http.StatusOK, result.OK("Login successful.", admin.Account{Username: strings.TrimSpace(req.Username)}))
	}
}

func logoutHandler(sessions *auth.Sessions, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok, err := c.Cookie(auth.CookieName); err == nil {
			sessions.Revoke(tok)
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.CookieName, "", -1, "/", "", secure, true)
		c.JSON(http.StatusOK, result.OK("Logged out.", struct{}{}))
	}
}

// dashboardHandler godoc
// @Summary Order statistics
// @Tags admin
// @Produce json
// @Success 200 {object} order.Stats
// @Router /admin/dashboard [get]
func dashboardHandler(dash *order.Dashboard, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := dash.ComputeStats(c.Request.Context())
		if err != nil {
			logger.Error("compute stats", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func adminListProductsHandler(products *admin.Products, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ps, err := products.List(c.Request.Context())
		if err != nil {
			logger.Error("list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if ps == nil {
			ps = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"items": ps})
	}
}

// createProductHandler godoc
// @Summary Add a product
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "product image"
// @Success 201 {object} result.Result[catalog.Product]
// @Failure 400 {object} result.Result[catalog.Product]
// @Router /admin/products [post]
func createProductHandler(products *admin.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := productInput(c)
		up, f, err := formUpload(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, result.Fail[catalog.Product]("Invalid image upload."))
			return
		}
		if f != nil {
			defer f.Close()
		}
		render(c, http.StatusCreated, products.Create(c.Request.Context(), in, up))
	}
}

// updateProductHandler godoc
// @Summary Update a product
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "product id"
// @Param image formData file false "replacement image"
// @Success 200 {object} result.Result[catalog.Product]
// @Failure 404 {object} result.Result[catalog.Product]
// @Router /admin/products/{id} [put]
func updateProductHandler(products *admin.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := productInput(c)
		up, f, err := formUpload(c, "image")
		if err != nil {
			c.JSON(http.StatusBadRequest, result.Fail[catalog.Product]("Invalid image upload."))
			return
		}
		if f != nil {
			defer f.Close()
		}
		render(c, http.StatusOK, products.Update(c.Request.Context(), c.Param("id"), in, up))
	}
}

func deleteProductHandler(products *admin.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, products.Delete(c.Request.Context(), c.Param("id")))
	}
}

func adminListOrdersHandler(orders *admin.Orders, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context())
		if err != nil {
			logger.Error("list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if list == nil {
			list = []order.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"items": list})
	}
}

// updateOrderStatusHandler godoc
// @Summary Change order and payment status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param body body admin.StatusUpdate true "new statuses"
// @Success 200 {object} result.Result[order.Order]
// @Failure 409 {object} result.Result[order.Order]
// @Router /admin/orders/{id}/status [put]
func updateOrderStatusHandler(orders *admin.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body admin.StatusUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, result.Fail[order.Order]("Invalid request body."))
			return
		}
		render(c, http.StatusOK, orders.UpdateStatus(c.Request.Context(), c.Param("id"), body))
	}
}

func getSettingsHandler(settings *admin.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, settings.Current())
	}
}

// updateSettingsHandler godoc
// @Summary Change admin credentials
// @Tags admin
// @Accept json
// @Produce json
// @Param body body admin.SettingsInput true "new credentials"
// @Success 200 {object} result.Result[admin.Account]
// @Failure 400 {object} result.Result[admin.Account]
// @Router /admin/settings [put]
func updateSettingsHandler(settings *admin.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body admin.SettingsInput
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, result.Fail[admin.Account]("Invalid request body."))
			return
		}
		body.Username = strings.TrimSpace(body.Username)
		render(c, http.StatusOK, settings.Update(body))
	}
}
