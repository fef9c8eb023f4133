package controllers

import (
	"strings"

	"Backend-Feedback/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func paramObjectID(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, utils.BadRequest("Invalid %s", name)
	}
	return id, nil
}

// parseBody decodes the JSON body into dto and runs its validate tags.
func parseBody(c *fiber.Ctx, dto interface{}) error {
	if err := c.BodyParser(dto); err != nil {
		return utils.BadRequest("Invalid input")
	}
	return utils.ValidateStruct(dto)
}

// queryBatches reads ?batches=a,b,c.
func queryBatches(c *fiber.Ctx) []string {
	raw := c.Query("batches")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
