package seed

import (
	"fmt"
	"log"

	"circle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	MaxDays     int
}

// Seed populates the database with a social mesh of test data: users,
// friendships in every lifecycle state, posts, comments, and reactions.
// Denormalized counters are recomputed from the ground truth at the end.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := createFriendships(f, users); err != nil {
		return fmt.Errorf("failed to create friendships: %w", err)
	}
	log.Println("✓ friendship mesh created")

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createCommentsAndReactions(f, users, posts); err != nil {
		return fmt.Errorf("failed to create comments and reactions: %w", err)
	}
	log.Println("✓ comments and reactions created")

	if err := recomputeCounters(db); err != nil {
		return fmt.Errorf("failed to recompute counters: %w", err)
	}
	log.Println("✓ denormalized counters recomputed")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE reactions, comments, posts, friendships, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a known login for manual testing
	if count >= 1 {
		user, err := f.CreateUser(func(u *models.User) {
			u.Name = "Test User"
			u.Email = "test@example.com"
		})
		if err == nil {
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser(func(u *models.User) {
			// gofakeit emails collide at scale; suffix keeps them unique
			u.Email = fmt.Sprintf("%d.%s", i, u.Email)
		})
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFriendships links each user to a handful of others. Roughly 60% of
// edges are accepted, 25% left pending, and the rest declined.
func createFriendships(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}

	for i, user := range users {
		edges := f.rng.Intn(5) + 1
		for j := 0; j < edges; j++ {
			other := users[f.rng.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}

			status := models.FriendshipStatusAccepted
			switch roll := f.rng.Float32(); {
			case roll < 0.25:
				status = models.FriendshipStatusPending
			case roll < 0.40:
				status = models.FriendshipStatusDeclined
			}

			// Duplicate pairs trip the unique index; skip and move on.
			if err := f.CreateFriendship(user, other, status); err != nil {
				continue
			}
		}

		if i%100 == 0 && i > 0 {
			log.Printf("Linked %d users...", i)
		}
	}

	return nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)

	const batchSize = 100
	batch := make([]*models.Post, 0, batchSize)
	for i := 0; i < count; i++ {
		user := users[f.rng.Intn(len(users))]
		batch = append(batch, f.BuildPost(user))

		if len(batch) == batchSize || i == count-1 {
			if err := f.CreatePostsBatch(batch); err != nil {
				return nil, err
			}
			posts = append(posts, batch...)
			batch = batch[:0]
			log.Printf("Created %d posts...", len(posts))
		}
	}

	return posts, nil
}

func createCommentsAndReactions(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		comments := f.rng.Intn(4)
		for i := 0; i < comments; i++ {
			commenter := users[f.rng.Intn(len(users))]
			comment, err := f.CreateComment(commenter, post)
			if err != nil {
				return err
			}

			if f.rng.Float32() < 0.3 {
				reactor := users[f.rng.Intn(len(users))]
				// One reaction per author per target; duplicates just skip.
				_ = f.CreateReaction(reactor, models.ReactionTargetComment, comment.ID, f.randomEmoji())
			}
		}

		reactions := f.rng.Intn(6)
		for i := 0; i < reactions; i++ {
			reactor := users[f.rng.Intn(len(users))]
			_ = f.CreateReaction(reactor, models.ReactionTargetPost, post.ID, f.randomEmoji())
		}
	}

	return nil
}

// recomputeCounters overwrites every denormalized counter from the source
// of truth, matching what the running application does after mutations.
func recomputeCounters(db *gorm.DB) error {
	statements := []string{
		`UPDATE users SET friend_count = (
			SELECT COUNT(*) FROM friendships
			WHERE (friendships.from_user_id = users.id OR friendships.to_user_id = users.id)
			AND friendships.status = 'accepted')`,
		`UPDATE users SET post_count = (
			SELECT COUNT(*) FROM posts
			WHERE posts.user_id = users.id AND posts.deleted_at IS NULL)`,
		`UPDATE posts SET comment_count = (
			SELECT COUNT(*) FROM comments
			WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL)`,
		`UPDATE posts SET like_count = (
			SELECT COUNT(*) FROM reactions
			WHERE reactions.target_type = 'Post' AND reactions.target_id = posts.id
			AND reactions.emoji = 'like')`,
		`UPDATE posts SET dislike_count = (
			SELECT COUNT(*) FROM reactions
			WHERE reactions.target_type = 'Post' AND reactions.target_id = posts.id
			AND reactions.emoji = 'dislike')`,
		`UPDATE comments SET like_count = (
			SELECT COUNT(*) FROM reactions
			WHERE reactions.target_type = 'Comment' AND reactions.target_id = comments.id
			AND reactions.emoji = 'like')`,
		`UPDATE comments SET dislike_count = (
			SELECT COUNT(*) FROM reactions
			WHERE reactions.target_type = 'Comment' AND reactions.target_id = comments.id
			AND reactions.emoji = 'dislike')`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
