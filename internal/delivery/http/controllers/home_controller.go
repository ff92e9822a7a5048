package controllers

import (
	"net/http"

	"plannr/internal/delivery/http/views"
)

type HomeController struct {
	Base
}

func NewHomeController(base Base) *HomeController {
	return &HomeController{Base: base}
}

// Home is the landing page for visitors.
func (c *HomeController) Home(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "home", views.Page{})
}

func (c *HomeController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "dashboard", views.Page{Title: "Dashboard"})
}
