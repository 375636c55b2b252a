package services

import (
	"errors"

	"recipebook/config"
	"recipebook/models"
	"recipebook/utils"

	"gorm.io/gorm"
)

// RegisterUser creates an account with a bcrypt-hashed password.
// Duplicate email/username surfaces as ErrAlreadyExists.
func RegisterUser(email, username, password, firstName, lastName string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:     email,
		Username:  username,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser checks credentials and issues a JWT.
func AuthenticateUser(email, password string) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("invalid email or password")
	}
	return utils.GenerateJWT(user.ID)
}

func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

// SubscriptionView is one followed author with a capped slice of their
// recipes and the full count.
type SubscriptionView struct {
	UserView
	Recipes      []RecipeMinified `json:"recipes"`
	RecipesCount int64            `json:"recipes_count"`
}

// Get returns a user profile with is_subscribed computed against the
// viewer. viewerID 0 means anonymous and always yields false.
func (s *UserService) Get(viewerID, userID uint) (*UserView, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscribed := false
	if viewerID != 0 {
		var count int64
		if err := config.DB.Model(&models.Follow{}).
			Where("follower_id = ? AND author_id = ?", viewerID, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		subscribed = count > 0
	}

	view := userView(user, subscribed)
	return &view, nil
}

// List returns one page of users, optionally prefix-filtered on
// username or email, with viewer-relative is_subscribed.
func (s *UserService) List(viewerID uint, search string, page, limit int) ([]UserView, int64, error) {
	filtered := func() *gorm.DB {
		q := config.DB.Model(&models.User{})
		if search != "" {
			q = q.Where("username LIKE ? OR email LIKE ?", search+"%", search+"%")
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := filtered().
		Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	following := make(map[uint]bool)
	if viewerID != 0 && len(users) > 0 {
		ids := make([]uint, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		var followedIDs []uint
		if err := config.DB.Model(&models.Follow{}).
			Where("follower_id = ? AND author_id IN ?", viewerID, ids).
			Pluck("author_id", &followedIDs).Error; err != nil {
			return nil, 0, err
		}
		for _, id := range followedIDs {
			following[id] = true
		}
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u, following[u.ID]))
	}
	return views, total, nil
}

// Subscriptions lists the authors the user follows, each with an
// embedded recipe list capped at recipesLimit (0 = uncapped) and the
// author's total recipe count.
func (s *UserService) Subscriptions(userID uint, page, limit, recipesLimit int) ([]SubscriptionView, int64, error) {
	followed := func() *gorm.DB {
		return config.DB.Model(&models.User{}).
			Joins("JOIN follows ON follows.author_id = users.id").
			Where("follows.follower_id = ?", userID)
	}

	var total int64
	if err := followed().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := followed().
		Order("users.id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]SubscriptionView, 0, len(authors))
	for _, author := range authors {
		view, err := buildSubscription(author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

// Subscription builds the single-author subscription payload returned
// right after a subscribe call.
func (s *UserService) Subscription(authorID uint, recipesLimit int) (*SubscriptionView, error) {
	var author models.User
	if err := config.DB.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return buildSubscription(author, recipesLimit)
}

func buildSubscription(author models.User, recipesLimit int) (*SubscriptionView, error) {
	var count int64
	if err := config.DB.Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	recipesQuery := config.DB.
		Where("author_id = ?", author.ID).
		Order("created_at DESC, id DESC")
	if recipesLimit > 0 {
		recipesQuery = recipesQuery.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := recipesQuery.Find(&recipes).Error; err != nil {
		return nil, err
	}

	minified := make([]RecipeMinified, 0, len(recipes))
	for _, r := range recipes {
		minified = append(minified, minifyRecipe(r))
	}

	return &SubscriptionView{
		UserView:     userView(author, true),
		Recipes:      minified,
		RecipesCount: count,
	}, nil
}
