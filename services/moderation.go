// services/moderation.go - post lifecycle: staged -> published/deleted -> restored
package services

import (
	"cipherboard/models"

	"gorm.io/gorm"
)

// Notifier receives moderation events. The live forum feed implements it; a
// nil notifier is fine.
type Notifier interface {
	PostPublished(post models.PublishedPost)
}

// ModerationService moves posts between the staged, published and deleted
// tables. Every move is keyed by the post's epoch timestamp and runs as a
// single transaction, so a crash can never leave a post in two states or in
// none.
type ModerationService struct {
	db   *gorm.DB
	feed Notifier
}

func NewModerationService(db *gorm.DB, feed Notifier) *ModerationService {
	return &ModerationService{db: db, feed: feed}
}

// AppendComment applies the moderator-comment convention to a post body:
// body;;comments;;moderator. Empty comments leave the body untouched.
func AppendComment(body, comments, moderator string) string {
	if comments == "" {
		return body
	}
	return body + models.CommentSeparator + comments + models.CommentSeparator + moderator
}

// publishedFrom builds the published record for an approved staged post:
// the moderated score is assigned and any moderator comments are appended.
func publishedFrom(staged models.StagedPost, score int, comments, moderator string) models.PublishedPost {
	p := models.PublishedPost{Post: staged.Post}
	p.ID = 0
	p.Score = score
	p.Body = AppendComment(staged.Body, comments, moderator)
	return p
}

// deletedFrom builds the deleted record for a removed post. Punish forces
// the penalty score; a plain delete keeps whatever score the post carried.
func deletedFrom(post models.Post, punish bool) models.DeletedPost {
	d := models.DeletedPost{Post: post}
	d.ID = 0
	if punish {
		d.Score = models.PunishScore
	}
	return d
}

// republishedFrom puts a deleted record back in published form, keeping its
// epoch, score and body.
func republishedFrom(deleted models.DeletedPost) models.PublishedPost {
	p := models.PublishedPost{Post: deleted.Post}
	p.ID = 0
	return p
}

// restagedFrom puts a deleted record back in staged form.
func restagedFrom(deleted models.DeletedPost) models.StagedPost {
	s := models.StagedPost{Post: deleted.Post}
	s.ID = 0
	return s
}

// PublishStaged approves a staged post: assign its moderated score, append
// any moderator comments, and move it to the published table.
func (s *ModerationService) PublishStaged(epoch int64, score int, comments, moderator string) error {
	var published models.PublishedPost

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var staged models.StagedPost
		if err := tx.Where("epoch = ?", epoch).First(&staged).Error; err != nil {
			return err
		}

		published = publishedFrom(staged, score, comments, moderator)

		if err := tx.Create(&published).Error; err != nil {
			return err
		}
		return tx.Delete(&staged).Error
	})
	if err != nil {
		return err
	}

	if s.feed != nil {
		s.feed.PostPublished(published)
	}
	return nil
}

// DeleteStaged moves a staged post to the deleted table, keeping its score.
func (s *ModerationService) DeleteStaged(epoch int64) error {
	return s.moveToDeleted(epoch, &models.StagedPost{}, false)
}

// PunishStaged deletes a staged post as a penalty, forcing its score to -1.
func (s *ModerationService) PunishStaged(epoch int64) error {
	return s.moveToDeleted(epoch, &models.StagedPost{}, true)
}

// DeletePublished takes a live post off its forum into the deleted table.
func (s *ModerationService) DeletePublished(epoch int64) error {
	return s.moveToDeleted(epoch, &models.PublishedPost{}, false)
}

// PunishPublished deletes a live post as a penalty, forcing its score to -1.
func (s *ModerationService) PunishPublished(epoch int64) error {
	return s.moveToDeleted(epoch, &models.PublishedPost{}, true)
}

func (s *ModerationService) moveToDeleted(epoch int64, from interface{}, punish bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post

		switch src := from.(type) {
		case *models.StagedPost:
			if err := tx.Where("epoch = ?", epoch).First(src).Error; err != nil {
				return err
			}
			post = src.Post
			if err := tx.Delete(src).Error; err != nil {
				return err
			}
		case *models.PublishedPost:
			if err := tx.Where("epoch = ?", epoch).First(src).Error; err != nil {
				return err
			}
			post = src.Post
			if err := tx.Delete(src).Error; err != nil {
				return err
			}
		}

		deleted := deletedFrom(post, punish)
		return tx.Create(&deleted).Error
	})
}

// RestoreToPublished puts a deleted post straight back on its forum.
func (s *ModerationService) RestoreToPublished(epoch int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var deleted models.DeletedPost
		if err := tx.Where("epoch = ?", epoch).First(&deleted).Error; err != nil {
			return err
		}
		restored := republishedFrom(deleted)
		if err := tx.Create(&restored).Error; err != nil {
			return err
		}
		return tx.Delete(&deleted).Error
	})
}

// RestoreToStaged puts a deleted post back in the moderation queue.
func (s *ModerationService) RestoreToStaged(epoch int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var deleted models.DeletedPost
		if err := tx.Where("epoch = ?", epoch).First(&deleted).Error; err != nil {
			return err
		}
		restored := restagedFrom(deleted)
		if err := tx.Create(&restored).Error; err != nil {
			return err
		}
		return tx.Delete(&deleted).Error
	})
}

// AnnotatePublished rewrites a live post's body with appended moderator
// comments, without moving it.
func (s *ModerationService) AnnotatePublished(epoch int64, text, comments, moderator string) error {
	return s.db.Model(&models.PublishedPost{}).
		Where("epoch = ?", epoch).
		Update("body", AppendComment(text, comments, moderator)).Error
}

// AmendStaged replaces a staged post's body before moderation.
func (s *ModerationService) AmendStaged(epoch int64, text string) error {
	return s.db.Model(&models.StagedPost{}).
		Where("epoch = ?", epoch).
		Update("body", text).Error
}
