// Operator tool for inspecting and patching the competition database
// directly. Meant for one-off fixes from a shell on the host, not for
// anything the admin pages already do.
//
// Usage:
//
//	dbedit -accounts                         list accounts
//	dbedit -requests                         list pending requests
//	dbedit -config                           show competition state
//	dbedit -team NAME -get FIELD             print one field of one account
//	dbedit -team NAME -set FIELD -value V    update one field of one account
//	dbedit -add-admin -team NAME -value PW   create an admin account
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"cipherboard/database"
	"cipherboard/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Fields an operator may patch. Password updates are hashed; everything
// else is written as-is.
var editableFields = map[string]bool{
	"username":      true,
	"password":      true,
	"team_email":    true,
	"school":        true,
	"postcode":      true,
	"teacher_name":  true,
	"teacher_email": true,
	"bio":           true,
	"logo":          true,
	"score":         true,
	"is_admin":      true,
}

func main() {
	var (
		listAccounts = flag.Bool("accounts", false, "list all accounts")
		listRequests = flag.Bool("requests", false, "list pending registration requests")
		showConfig   = flag.Bool("config", false, "show competition state")
		team         = flag.String("team", "", "team username to operate on")
		getField     = flag.String("get", "", "field to print")
		setField     = flag.String("set", "", "field to update")
		value        = flag.String("value", "", "new value for -set, or password for -add-admin")
		addAdmin     = flag.Bool("add-admin", false, "create an admin account (-team, -value required)")
		school       = flag.String("school", "", "school for -add-admin")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	database.InitConfigDB()
	defer database.CloseDB()

	switch {
	case *listAccounts:
		printAccounts()
	case *listRequests:
		printRequests()
	case *showConfig:
		printConfig()
	case *addAdmin:
		if *team == "" || *value == "" {
			log.Fatal("add-admin requires -team and -value (password)")
		}
		createAdmin(*team, *value, *school)
	case *team != "" && *getField != "":
		printField(*team, *getField)
	case *team != "" && *setField != "":
		updateField(*team, *setField, *value)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printAccounts() {
	var accounts []models.Account
	if err := database.GetDB().Preload("Members").Order("id desc").Find(&accounts).Error; err != nil {
		log.Fatal("Failed to fetch accounts:", err)
	}
	for _, acc := range accounts {
		fmt.Printf("%d\t%s\t%s\tadmin=%v\tscore=%d\n",
			acc.ID, acc.Username, acc.School, acc.IsAdmin, acc.Score)
		for _, m := range acc.Members {
			if m.Populated() {
				fmt.Printf("\t- %s (%s, %s)\n", m.Name, m.Age, m.Tier)
			}
		}
	}
}

func printRequests() {
	var requests []models.RegistrationRequest
	if err := database.GetDB().Preload("Members").Order("id desc").Find(&requests).Error; err != nil {
		log.Fatal("Failed to fetch requests:", err)
	}
	for _, req := range requests {
		fmt.Printf("%d\t%s\t%s\t%s\n", req.ID, req.Username, req.School, req.TeamEmail)
	}
}

func printConfig() {
	var cfg models.CompetitionConfig
	if err := database.GetConfigDB().Order("id desc").First(&cfg).Error; err != nil {
		log.Fatal("Failed to fetch config:", err)
	}
	fmt.Printf("active_day=%d\nreleased=%v\nregistration_open=%v\n",
		cfg.ActiveDay, cfg.Released, cfg.RegistrationOpen)
}

func printField(team, field string) {
	if !editableFields[field] {
		log.Fatalf("Unknown field %q", field)
	}
	var result map[string]interface{}
	err := database.GetDB().Model(&models.Account{}).
		Select(field).
		Where("username = ?", team).
		Take(&result).Error
	if err != nil {
		log.Fatal("Failed to fetch account:", err)
	}
	fmt.Println(result[field])
}

func updateField(team, field, value string) {
	if !editableFields[field] {
		log.Fatalf("Unknown field %q", field)
	}

	var newValue interface{} = value
	if field == "password" {
		hash, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		newValue = string(hash)
	}

	res := database.GetDB().Model(&models.Account{}).
		Where("username = ?", team).
		Update(field, newValue)
	if res.Error != nil {
		log.Fatal("Failed to update account:", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Fatalf("No account with username %q", team)
	}
	fmt.Printf("Updated %s for %s\n", field, team)
}

func createAdmin(username, password, school string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	account := models.Account{
		Username: username,
		Password: string(hash),
		IsAdmin:  true,
		School:   school,
	}
	if err := database.GetDB().Create(&account).Error; err != nil {
		log.Fatal("Failed to create account:", err)
	}
	fmt.Printf("Created admin account %s (id %d)\n", username, account.ID)
}
