// controllers/reminder.go
package controllers

import (
	"net/http"

	"tilecrm-backend/models"
	"tilecrm-backend/services"
	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateReminderInput defines the expected JSON structure
type CreateReminderInput struct {
	Title    string              `json:"title"`
	Note     string              `json:"note"`
	RemindAt *utils.FlexibleTime `json:"remindAt"`
}

type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

// CreateReminder adds a follow-up reminder to a customer
func (rc *ReminderController) CreateReminder(c *gin.Context) {
	customerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input CreateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reminder := models.Reminder{
		Title:    input.Title,
		Note:     input.Note,
		RemindAt: input.RemindAt.Ptr(),
	}
	if err := rc.reminders.Create(c.Request.Context(), customerID, &reminder); err != nil {
		respondError(c, err, "Customer not found", "Failed to create reminder")
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

func (rc *ReminderController) GetReminders(c *gin.Context) {
	customerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	reminders, err := rc.reminders.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Customer not found", "Failed to retrieve reminders")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

func (rc *ReminderController) DeleteReminder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := rc.reminders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Reminder not found", "Failed to delete reminder")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}
