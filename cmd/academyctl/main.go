package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SaidSafwan/Project-DanceAcademy/internal/auth"
	"github.com/SaidSafwan/Project-DanceAcademy/internal/contact"
)

// academyctl is the operator surface. Role changes have no web endpoint on
// purpose; promoting an account to admin happens only here, directly against
// the store.
func main() {
	promoteCmd := flag.NewFlagSet("promote", flag.ExitOnError)
	promoteMongo := promoteCmd.String("mongo", envOr("MONGO_URI", ""), "MongoDB URI")
	promoteDB := promoteCmd.String("db", envOr("MONGO_DB", "danceacademy"), "Mongo database name")
	promoteColl := promoteCmd.String("coll", "users", "accounts collection")
	promoteUser := promoteCmd.String("user", "", "username to promote to admin")

	demoteCmd := flag.NewFlagSet("demote", flag.ExitOnError)
	demoteMongo := demoteCmd.String("mongo", envOr("MONGO_URI", ""), "MongoDB URI")
	demoteDB := demoteCmd.String("db", envOr("MONGO_DB", "danceacademy"), "Mongo database name")
	demoteColl := demoteCmd.String("coll", "users", "accounts collection")
	demoteUser := demoteCmd.String("user", "", "username to demote to user")

	createCmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
	createMongo := createCmd.String("mongo", envOr("MONGO_URI", ""), "MongoDB URI")
	createDB := createCmd.String("db", envOr("MONGO_DB", "danceacademy"), "Mongo database name")
	createColl := createCmd.String("coll", "users", "accounts collection")
	createUser := createCmd.String("user", "", "admin username")
	createEmail := createCmd.String("email", "", "admin email")
	createPass := createCmd.String("pass", "", "admin password")

	listCmd := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	listMongo := listCmd.String("mongo", envOr("MONGO_URI", ""), "MongoDB URI")
	listDB := listCmd.String("db", envOr("MONGO_DB", "danceacademy"), "Mongo database name")
	listColl := listCmd.String("coll", "contacts", "contacts collection")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "promote":
		_ = promoteCmd.Parse(os.Args[2:])
		setRole(ctx, *promoteMongo, *promoteDB, *promoteColl, *promoteUser, auth.RoleAdmin)

	case "demote":
		_ = demoteCmd.Parse(os.Args[2:])
		setRole(ctx, *demoteMongo, *demoteDB, *demoteColl, *demoteUser, auth.RoleUser)

	case "create-admin":
		_ = createCmd.Parse(os.Args[2:])
		createAdmin(ctx, *createMongo, *createDB, *createColl, *createUser, *createEmail, *createPass)

	case "list-contacts":
		_ = listCmd.Parse(os.Args[2:])
		listContacts(ctx, *listMongo, *listDB, *listColl)

	default:
		usage()
		os.Exit(2)
	}
}

func setRole(ctx context.Context, uri, db, coll, username string, role auth.Role) {
	if username == "" {
		die("missing -user")
	}
	store, err := auth.NewMongoAccountStore(ctx, uri, db, coll)
	dieIf(err)
	defer store.Close(ctx)

	dieIf(store.UpdateRole(ctx, username, role))
	fmt.Printf("%s is now %s\n", username, role)
}

func createAdmin(ctx context.Context, uri, db, coll, username, email, password string) {
	if username == "" || email == "" || password == "" {
		die("missing -user, -email or -pass")
	}
	store, err := auth.NewMongoAccountStore(ctx, uri, db, coll)
	dieIf(err)
	defer store.Close(ctx)

	hash, err := auth.HashPassword(auth.DefaultArgon, password)
	dieIf(err)

	a := &auth.Account{
		Username: username,
		Email:    email,
		PassHash: hash,
		Role:     auth.RoleAdmin,
	}
	dieIf(store.Create(ctx, a))
	fmt.Printf("created admin %s (%s)\n", a.Username, a.ID)
}

func listContacts(ctx context.Context, uri, db, coll string) {
	store, err := contact.NewMongoStore(ctx, uri, db, coll)
	dieIf(err)
	defer store.Close(ctx)

	records, err := store.List(ctx)
	dieIf(err)
	for _, c := range records {
		fmt.Printf("%s  %-20s %-15s %-25s %s\n",
			c.CreatedAt.Format("2006-01-02 15:04"), c.Name, c.Phone, c.Email, c.Desc)
	}
	fmt.Printf("%d record(s)\n", len(records))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: academyctl <command> [flags]

commands:
  promote        grant the admin role to an account
  demote         revert an account to the user role
  create-admin   create an account that already has the admin role
  list-contacts  print submitted contact records`)
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, "academyctl:", msg)
	os.Exit(1)
}

func dieIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "academyctl:", err)
		os.Exit(1)
	}
}
