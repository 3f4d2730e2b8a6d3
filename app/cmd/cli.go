package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/retailnet/orders-api/app/configs"
	"github.com/retailnet/orders-api/app/models"
	"github.com/retailnet/orders-api/app/models/migrations"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "create-user",
				Usage: "Provision a user account (shop or buyer)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
					&cli.StringFlag{Name: "type", Value: models.UserTypeBuyer, Usage: "shop or buyer"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					userType := c.String("type")
					if userType != models.UserTypeShop && userType != models.UserTypeBuyer {
						return fmt.Errorf("type must be %q or %q", models.UserTypeShop, models.UserTypeBuyer)
					}

					hash, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
					if err != nil {
						return err
					}

					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}

					user := models.User{
						Email:     c.String("email"),
						Password:  string(hash),
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Type:      userType,
						IsActive:  true,
					}
					if err := db.WithContext(ctx).Create(&user).Error; err != nil {
						return err
					}
					log.Printf("✅ User %s created (%s)", user.Email, user.ID)
					return nil
				},
			},
			{
				Name:  "issue-token",
				Usage: "Issue an API token for an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}

					var user models.User
					if err := db.WithContext(ctx).First(&user, "email = ?", c.String("email")).Error; err != nil {
						return fmt.Errorf("user lookup failed: %w", err)
					}

					key, err := configs.NewTokenKey()
					if err != nil {
						return err
					}
					token := models.APIToken{Key: key, UserID: user.ID}
					if err := db.WithContext(ctx).Create(&token).Error; err != nil {
						return err
					}

					fmt.Printf("Token for %s:\n%s\n", user.Email, token.Key)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a new TOKEN_KEY value for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintTokenKey()
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
