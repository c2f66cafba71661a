package migration

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/auth"
	"git.tidepool.community/tidepool/tidepool/src/config"
	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
	"git.tidepool.community/tidepool/tidepool/src/utils"
	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
)

// SampleSeed resets the database, migrates it to the latest version, and
// fills it with sample data for local dev. All seeded users have the
// password "password".
func SampleSeed() {
	ResetDB()
	Migrate(LatestVersion())

	ctx := context.Background()
	conn := db.NewConnWithConfig(config.PostgresConfig{
		LogLevel: tracelog.LogLevelWarn,
	})
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		panic(err)
	}
	defer tx.Rollback(ctx)

	fmt.Println("Creating admin user (\"admin\"/\"password\")...")
	admin := seedUser(ctx, tx, models.User{Username: "admin", Email: "team@tidepool.community", IsAdmin: true})

	fmt.Println("Creating normal users (all with password \"password\")...")
	alice := seedUser(ctx, tx, models.User{Username: "alice", Name: "Alice"})
	bob := seedUser(ctx, tx, models.User{Username: "bob", Name: "Bob"})
	charlie := seedUser(ctx, tx, models.User{Username: "charlie", Name: "Charlie"})
	users := []*models.User{admin, alice, bob, charlie}

	fmt.Println("Creating content...")
	var refs []models.ContentRef
	for i := 0; i < 5; i++ {
		author := users[rand.Intn(len(users))]

		refs = append(refs, seedThread(ctx, tx, author))
		refs = append(refs, seedProject(ctx, tx, author))
		refs = append(refs, seedMusicPost(ctx, tx, author))
		refs = append(refs, seedTimelineUpdate(ctx, tx, author))
		refs = append(refs, seedEvent(ctx, tx, author))
		refs = append(refs, seedDevLog(ctx, tx, author))
	}

	fmt.Println("Creating comments...")
	for _, ref := range refs {
		for i := 0; i < rand.Intn(5); i++ {
			author := users[rand.Intn(len(users))]
			_, err := tpdata.InsertComment(ctx, tx, ref, models.Comment{
				AuthorID: &author.ID,
				Body:     lorem.Paragraph(1, 2),
			})
			if err != nil {
				panic(err)
			}
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		panic(err)
	}

	fmt.Println("Done!")
}

// Drops and recreates the configured database. The configured role must
// have the CREATEDB attribute.
func ResetDB() {
	fmt.Println("Resetting database...")

	ctx := context.Background()
	// We connect to db "template1", because we have to connect to something
	// other than our own db in order to drop it.
	template1DSN := fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s",
		config.Config.Postgres.User,
		config.Config.Postgres.Password,
		config.Config.Postgres.Hostname,
		config.Config.Postgres.Port,
		"template1",
	)
	// We have to use the low-level API of pgconn, because the pgx Exec
	// always wraps the query in a transaction.
	lowLevelConn, err := pgconn.Connect(ctx, template1DSN)
	if err != nil {
		panic(fmt.Errorf("failed to connect to db: %w", err))
	}
	defer lowLevelConn.Close(ctx)

	result := lowLevelConn.ExecParams(ctx, fmt.Sprintf("DROP DATABASE %s", config.Config.Postgres.DbName), nil, nil, nil, nil)
	_, err = result.Close()
	pgErr, isPgError := err.(*pgconn.PgError)
	if err != nil {
		if !(isPgError && pgErr.SQLState() == "3D000") { // 3D000 means "Database does not exist"
			panic(fmt.Errorf("failed to drop db: %w", err))
		}
	}

	result = lowLevelConn.ExecParams(ctx, fmt.Sprintf("CREATE DATABASE %s", config.Config.Postgres.DbName), nil, nil, nil, nil)
	_, err = result.Close()
	if err != nil {
		panic(fmt.Errorf("failed to create db: %w", err))
	}
}

func seedUser(ctx context.Context, conn db.ConnOrTx, input models.User) *models.User {
	user, err := db.QueryOne[models.User](ctx, conn,
		`
		INSERT INTO tp_user (username, password, email, is_admin, date_joined, name, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING $columns
		`,
		input.Username,
		auth.HashPassword("password").String(),
		utils.OrDefault(input.Email, fmt.Sprintf("%s@example.com", input.Username)),
		input.IsAdmin,
		time.Now(),
		input.Name,
		lorem.Paragraph(0, 2),
	)
	if err != nil {
		panic(err)
	}

	return user
}

func seedThread(ctx context.Context, conn db.ConnOrTx, author *models.User) models.ContentRef {
	id := uuid.NewString()
	_, err := conn.Exec(ctx,
		`
		INSERT INTO thread (id, title, body, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		`,
		id, lorem.Sentence(3, 8), lorem.Paragraph(1, 3), author.ID, time.Now(),
	)
	if err != nil {
		panic(err)
	}
	return models.ContentRef{Type: models.ContentTypeForumThread, ID: id}
}

func seedProject(ctx context.Context, conn db.ConnOrTx, author *models.User) models.ContentRef {
	id := uuid.NewString()
	_, err := conn.Exec(ctx,
		`
		INSERT INTO project (id, title, description, status, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		`,
		id, lorem.Sentence(2, 5), lorem.Paragraph(1, 3), models.ProjectStatusActive, author.ID, time.Now(),
	)
	if err != nil {
		panic(err)
	}
	return models.ContentRef{Type: models.ContentTypeProject, ID: id}
}

func seedMusicPost(ctx context.Context, conn db.ConnOrTx, author *models.User) models.ContentRef {
	id := uuid.NewString()
	_, err := conn.Exec(ctx,
		`
		INSERT INTO music_post (id, title, body, url, type, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
		id, lorem.Sentence(2, 5), lorem.Paragraph(1, 2), "https://example.com/"+lorem.Word(3, 10)+".mp3", "mp3", author.ID, time.Now(),
	)
	if err != nil {
		panic(err)
	}
	return models.ContentRef{Type: models.ContentTypeMusicPost, ID: id}
}

func seedTimelineUpdate(ctx context.Context, conn db.ConnOrTx, author *models.User) models.ContentRef {
	id := uuid.NewString()
	var title *string
	if rand.Intn(2) == 1 {
		t := lorem.Sentence(2, 6)
		title = &t
	}
	_, err := conn.Exec(ctx,
		`
		INSERT INTO timeline_update (id, title, body, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		`,
		id, title, lorem.Paragraph(1, 2), author.ID, time.Now(),
	)
	if err != nil {
		panic(err)
	}
	return models.ContentRef{Type: models.ContentTypeTimelineUpdate, ID: id}
}

func seedEvent(ctx context.Context, conn db.ConnOrTx, author *models.User) models.ContentRef {
	id := uuid.NewString()
	_, err := conn.Exec(ctx,
		`
		INSERT INTO event (id, title, details, starts_at, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		`,
		id, lorem.Sentence(2, 6), lorem.Paragraph(1, 2), time.Now().AddDate(0, 0, rand.Intn(60)), author.ID, time.Now(),
	)
	if err != nil {
		panic(err)
	}
	return models.ContentRef{Type: models.ContentTypeEvent, ID: id}
}

func seedDevLog(ctx context.Context, conn db.ConnOrTx, author *models.User) models.ContentRef {
	id := uuid.NewString()
	_, err := conn.Exec(ctx,
		`
		INSERT INTO dev_log (id, title, body, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		`,
		id, lorem.Sentence(3, 8), lorem.Paragraph(1, 4), author.ID, time.Now(),
	)
	if err != nil {
		panic(err)
	}
	return models.ContentRef{Type: models.ContentTypeDevLog, ID: id}
}
