package cartController

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shivamnegi1705/khidki-backend/configs"
	"github.com/shivamnegi1705/khidki-backend/inventory"
	"github.com/shivamnegi1705/khidki-backend/models"
	"github.com/shivamnegi1705/khidki-backend/repo"
	"github.com/shivamnegi1705/khidki-backend/responses"
)

var (
	cartRepo    = repo.NewCartRepo(configs.GetCollection(configs.DB, "users"))
	productRepo = repo.NewProductRepo(configs.GetCollection(configs.DB, "products"))
)

func userIDFromLocals(c *fiber.Ctx) (primitive.ObjectID, error) {
	userId, ok := c.Locals("userId").(string)
	if !ok || userId == "" {
		return primitive.NilObjectID, errors.New("user ID not found in token")
	}
	return primitive.ObjectIDFromHex(userId)
}

type addToCartRequest struct {
	ProductID string `json:"id" validate:"required"`
}

// AddToCart adds one unit of a product to the cart, snapshotting its name
// and price. Adding an item already present increments its quantity.
func AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var request addToCartRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	product, err := productRepo.ByID(ctx, productID)
	if err != nil {
		if errors.Is(err, inventory.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
				Status:  fiber.StatusNotFound,
				Message: "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error fetching product details",
		})
	}

	cart, err := cartRepo.Get(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "User not found",
		})
	}

	found := false
	for i := range cart {
		if cart[i].ProductId == productID {
			cart[i].Quantity += 1
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartItem{
			ProductId: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  1,
		})
	}

	if err := cartRepo.Save(ctx, userID, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Successfully added to cart",
		Result: &fiber.Map{
			"cartCount": len(cart),
		},
	})
}

type removeFromCartRequest struct {
	ProductID string `json:"id" validate:"required"`
}

// RemoveFromCart decrements the item's quantity, dropping it entirely at zero.
func RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	var request removeFromCartRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request",
		})
	}

	productID, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.UserResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product Id",
		})
	}

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	cart, err := cartRepo.Get(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "User not found",
		})
	}

	found := false
	for i := range cart {
		if cart[i].ProductId == productID {
			cart[i].Quantity -= 1
			if cart[i].Quantity <= 0 {
				cart = append(cart[:i], cart[i+1:]...)
			}
			found = true
			break
		}
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(responses.UserResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product not found in cart",
		})
	}

	if err := cartRepo.Save(ctx, userID, cart); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update cart",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Successfully removed from cart",
		Result: &fiber.Map{
			"cartCount": len(cart),
		},
	})
}

// GetCart returns the cart contents.
func GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	cart, err := cartRepo.Get(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "User not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Cart fetched successfully",
		Result: &fiber.Map{
			"cart":      cart,
			"cartCount": len(cart),
		},
	})
}

// GetCartTotal sums price x quantity over the cart.
func GetCartTotal(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.UserResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user ID in token",
		})
	}

	cart, err := cartRepo.Get(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "User not found",
		})
	}

	var total float64
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Cart total calculated",
		Result: &fiber.Map{
			"total":     total,
			"cartCount": len(cart),
		},
	})
}
