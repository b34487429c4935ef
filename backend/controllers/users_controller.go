package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Developersbbs/key-system-client-sub001/backend/config"
	"github.com/Developersbbs/key-system-client-sub001/backend/middleware"
	"github.com/Developersbbs/key-system-client-sub001/backend/models"
	"github.com/Developersbbs/key-system-client-sub001/backend/utils"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

func (uc *UsersController) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	return c.JSON(fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"role":             user.Role,
		"isActive":         user.IsActive,
		"accessibleLevels": user.AccessibleLevelNumbers(),
	})
}

// ListMembers is the admin view of every member account.
func (uc *UsersController) ListMembers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Where("role = ?", "member").Order("id").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		result = append(result, fiber.Map{
			"id":               u.ID,
			"username":         u.Username,
			"email":            u.Email,
			"isActive":         u.IsActive,
			"accessibleLevels": u.AccessibleLevelNumbers(),
			"lastActive":       u.LastActive,
		})
	}
	return c.JSON(result)
}

// UpdateMemberAccess lets an admin activate/deactivate an account and
// grant level access. This is where the accessible-levels set the
// resolver consumes gets decided.
func (uc *UsersController) UpdateMemberAccess(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		IsActive         *bool `json:"isActive"`
		AccessibleLevels []int `json:"accessibleLevels"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.AccessibleLevels != nil {
		for _, n := range input.AccessibleLevels {
			if n < 1 {
				return utils.BadRequest(c, "Level numbers must be positive")
			}
		}
		user.SetAccessibleLevels(input.AccessibleLevels)
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return c.JSON(fiber.Map{
		"message": "Member updated",
		"user": fiber.Map{
			"id":               user.ID,
			"isActive":         user.IsActive,
			"accessibleLevels": user.AccessibleLevelNumbers(),
		},
	})
}
