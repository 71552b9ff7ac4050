package controllers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/services"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, events services.OrderEvents) *OrderController {
	return &OrderController{Orders: services.NewOrderService(db, events)}
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orders, err := oc.Orders.List(p)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	utils.RespondJSON(c, http.StatusOK, out)
}

// CreateOrder checks out the caller's cart.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	order, err := oc.Orders.Place(p.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, newOrderResponse(*order))
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(p, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, newOrderResponse(*order))
}

// UpdateOrder serves PUT and PATCH with {"status": ..., "delivery_crew": id|null}.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return
	}
	update, err := parseOrderUpdate(raw)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	order, err := oc.Orders.Update(p, id, update, c.Request.Method == http.MethodPatch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, newOrderResponse(*order))
}

func parseOrderUpdate(raw map[string]json.RawMessage) (services.OrderUpdate, error) {
	var update services.OrderUpdate
	for key := range raw {
		update.Fields = append(update.Fields, key)
	}
	sort.Strings(update.Fields)

	if v, ok := raw["status"]; ok {
		var status string
		if err := json.Unmarshal(v, &status); err != nil {
			return update, utils.FieldError("status", "Expected a string.")
		}
		s := models.OrderStatus(status)
		update.Status = &s
	}
	if v, ok := raw["delivery_crew"]; ok {
		update.DeliveryCrewSet = true
		if string(v) != "null" {
			var crewID uint
			if err := json.Unmarshal(v, &crewID); err != nil || crewID == 0 {
				return update, utils.FieldError("delivery_crew", "Incorrect type. Expected pk value.")
			}
			update.DeliveryCrewID = &crewID
		}
	}
	return update, nil
}
