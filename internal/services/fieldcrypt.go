package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/afetlink/afetlink-backend/internal/models"
	"github.com/afetlink/afetlink-backend/pkg/envelope"
)

// This file is the field protection policy: it declares, per record type,
// which logical fields are sensitive and splices decrypted plaintext back
// under the original field names on read. Callers never see raw envelopes
// in normal reads; absent optional fields produce no envelope at all.

// DecryptScrapedReport returns the report with text and image_url decrypted.
func DecryptScrapedReport(r models.ScrapedReport, key []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{
		"id":         r.ID.Hex(),
		"is_used":    r.IsUsed,
		"created_at": r.CreatedAt,
	}
	if r.Username != "" {
		out["username"] = r.Username
	}
	if r.TweetCreatedAt != nil {
		out["tweet_created_at"] = r.TweetCreatedAt
	}
	if r.EncryptedText != nil {
		var text string
		if err := envelope.Open(r.EncryptedText, key, &text); err != nil {
			return nil, err
		}
		out["text"] = text
	}
	if r.EncryptedImageURL != nil {
		var imageURL string
		if err := envelope.Open(r.EncryptedImageURL, key, &imageURL); err != nil {
			return nil, err
		}
		out["image_url"] = imageURL
	}
	return out, nil
}

// DecryptScrapedReports decrypts a batch concurrently. All-or-nothing: one
// failing envelope aborts the whole batch, no partial results.
func DecryptScrapedReports(ctx context.Context, reports []models.ScrapedReport, key []byte) ([]map[string]interface{}, error) {
	results := make([]map[string]interface{}, len(reports))
	g, _ := errgroup.WithContext(ctx)
	for i, r := range reports {
		i, r := i, r
		g.Go(func() error {
			m, err := DecryptScrapedReport(r, key)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DecryptVolunteer returns the volunteer with every sensitive field decrypted.
func DecryptVolunteer(v models.Volunteer, key []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{
		"id":         v.ID.Hex(),
		"age":        v.Age,
		"gender":     v.Gender,
		"il":         v.Il,
		"ilce":       v.Ilce,
		"certified":  v.Certified,
		"created_at": v.CreatedAt,
	}
	if len(v.SkillAreas) > 0 {
		out["skill_areas"] = v.SkillAreas
	}
	if v.SpecialSkills != "" {
		out["special_skills"] = v.SpecialSkills
	}

	fields := []struct {
		env  *envelope.Envelope
		name string
	}{
		{v.EncryptedName, "name"},
		{v.EncryptedNationalID, "national_id"},
		{v.EncryptedPhone, "phone"},
		{v.EncryptedEmail, "email"},
		{v.EncryptedAddress, "address"},
	}
	for _, f := range fields {
		if f.env == nil {
			continue
		}
		var plain string
		if err := envelope.Open(f.env, key, &plain); err != nil {
			return nil, err
		}
		out[f.name] = plain
	}
	return out, nil
}

// DecryptVolunteers decrypts a batch concurrently, all-or-nothing.
func DecryptVolunteers(ctx context.Context, volunteers []models.Volunteer, key []byte) ([]map[string]interface{}, error) {
	results := make([]map[string]interface{}, len(volunteers))
	g, _ := errgroup.WithContext(ctx)
	for i, v := range volunteers {
		i, v := i, v
		g.Go(func() error {
			m, err := DecryptVolunteer(v, key)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DecryptCaseAddress opens only the address blob of a case.
func DecryptCaseAddress(c models.Case, key []byte) (models.Address, error) {
	var addr models.Address
	if err := envelope.Open(c.EncryptedAddress, key, &addr); err != nil {
		return models.Address{}, err
	}
	return addr, nil
}

// DecryptCase returns the full case: address, summary note and the optional
// address link decrypted.
func DecryptCase(c models.Case, key []byte) (map[string]interface{}, error) {
	addr, err := DecryptCaseAddress(c, key)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"id":         c.ID.Hex(),
		"address":    addr,
		"created_at": c.CreatedAt,
	}
	if c.SourceReportID != nil {
		out["source_report_id"] = c.SourceReportID.Hex()
	}
	if c.EncryptedSummary != nil {
		var summary string
		if err := envelope.Open(c.EncryptedSummary, key, &summary); err != nil {
			return nil, err
		}
		out["summary_note"] = summary
	}
	if c.EncryptedAddressLink != nil {
		var link string
		if err := envelope.Open(c.EncryptedAddressLink, key, &link); err != nil {
			return nil, err
		}
		out["address_link"] = link
	}
	return out, nil
}
