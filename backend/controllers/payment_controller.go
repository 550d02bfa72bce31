package controllers

import (
	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentController(db *gorm.DB, cfg *config.Config) *PaymentController {
	return &PaymentController{DB: db, Cfg: cfg}
}

type SubscribeInput struct {
	GatewayPlanID string `json:"gatewayPlanId"` // Razorpay plan ID
	PlanName      string `json:"planName"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

// Subscribe creates a subscription with the payment gateway and records
// it. Gateway failures are surfaced once, with no retry.
func (pc *PaymentController) Subscribe(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SubscribeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.GatewayPlanID == "" {
		return utils.ValidationError(c, map[string]string{"gatewayPlanId": "gatewayPlanId is required"})
	}

	client := razorpay.NewClient(pc.Cfg.RazorpayKeyID, pc.Cfg.RazorpayKeySecret)
	sub, err := client.Subscription.Create(map[string]interface{}{
		"plan_id":         input.GatewayPlanID,
		"total_count":     12,
		"customer_notify": 1,
		"notes": map[string]interface{}{
			"planName": input.PlanName,
			"email":    input.Email,
			"phone":    input.Phone,
			"name":     input.Name,
		},
	}, nil)
	if err != nil {
		return utils.BadGateway(c, "Failed to create subscription")
	}

	subID, _ := sub["id"].(string)
	record := models.Subscription{
		UserID:       userID,
		PlanName:     input.PlanName,
		GatewaySubID: subID,
		Status:       "created",
	}
	if err := pc.DB.Create(&record).Error; err != nil {
		return utils.InternalServerError(c, "Could not record subscription")
	}

	return utils.Created(c, fiber.Map{
		"subscriptionId": subID,
		"planName":       record.PlanName,
		"status":         record.Status,
	})
}
