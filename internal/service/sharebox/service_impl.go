package sharebox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eurachacha/achacha-api/internal/domain"
	"github.com/eurachacha/achacha-api/internal/domain/sharing"
	"github.com/eurachacha/achacha-api/internal/platform/logger"
	"github.com/eurachacha/achacha-api/internal/store"
)

// inviteCodeRetries bounds how many times CreateShareBox regenerates the
// invite code after a uniqueness collision before giving up.
const inviteCodeRetries = 3

// Verify interface compliance at compile time
var _ ShareBoxService = (*shareBoxServiceImpl)(nil)

// shareBoxServiceImpl implements the ShareBoxService interface.
type shareBoxServiceImpl struct {
	boxRepo           ShareBoxRepository
	participationRepo ParticipationRepository
	gifticonRepo      GifticonRepository
	userRepo          UserRepository
	boxRules          sharing.BoxService
	gifticonRules     sharing.GifticonService
	logger            *slog.Logger
}

// NewShareBoxService creates a new ShareBoxService implementation.
func NewShareBoxService(
	boxRepo ShareBoxRepository,
	participationRepo ParticipationRepository,
	gifticonRepo GifticonRepository,
	userRepo UserRepository,
	boxRules sharing.BoxService,
	gifticonRules sharing.GifticonService,
	logger *slog.Logger,
) ShareBoxService {
	// Validate inputs
	if boxRepo == nil {
		panic("boxRepo cannot be nil")
	}
	if participationRepo == nil {
		panic("participationRepo cannot be nil")
	}
	if gifticonRepo == nil {
		panic("gifticonRepo cannot be nil")
	}
	if userRepo == nil {
		panic("userRepo cannot be nil")
	}
	if boxRules == nil {
		panic("boxRules cannot be nil")
	}
	if gifticonRules == nil {
		panic("gifticonRules cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &shareBoxServiceImpl{
		boxRepo:           boxRepo,
		participationRepo: participationRepo,
		gifticonRepo:      gifticonRepo,
		userRepo:          userRepo,
		boxRules:          boxRules,
		gifticonRules:     gifticonRules,
		logger:            logger.With(slog.String("component", "sharebox_service")),
	}
}

// CreateShareBox implements ShareBoxService.CreateShareBox.
// It creates the box and the owner's participation in one transaction.
func (s *shareBoxServiceImpl) CreateShareBox(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.ShareBox, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.boxRules.ValidateName(name); err != nil {
		log.Warn("invalid share box name",
			slog.String("user_id", userID.String()))
		return nil, err
	}

	var box *domain.ShareBox
	err := s.runInTransaction(ctx, func(ctx context.Context, repos txRepos) error {
		// The invite code is random, so a uniqueness collision is possible.
		// Regenerate and retry a bounded number of times.
		for attempt := 0; ; attempt++ {
			candidate, err := domain.NewShareBox(userID, name)
			if err != nil {
				return fmt.Errorf("failed to create share box: %w", err)
			}

			err = repos.boxes.Create(ctx, candidate)
			if err == nil {
				box = candidate
				break
			}
			if errors.Is(err, store.ErrInviteCodeExists) && attempt < inviteCodeRetries {
				log.Debug("invite code collision, regenerating",
					slog.Int("attempt", attempt+1))
				continue
			}
			return fmt.Errorf("failed to save share box: %w", err)
		}

		participation, err := domain.NewParticipation(userID, box.ID)
		if err != nil {
			return fmt.Errorf("failed to create owner participation: %w", err)
		}
		if err := repos.participations.Create(ctx, participation); err != nil {
			return fmt.Errorf("failed to save owner participation: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create share box",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("create_share_box", "could not create share box", err)
	}

	log.Info("share box created",
		slog.String("sharebox_id", box.ID.String()),
		slog.String("owner_id", userID.String()))
	return box, nil
}

// JoinShareBox implements ShareBoxService.JoinShareBox.
func (s *shareBoxServiceImpl) JoinShareBox(
	ctx context.Context,
	userID uuid.UUID,
	inviteCode string,
) (*domain.ShareBox, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	box, err := s.boxRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, store.ErrShareBoxNotFound) {
			log.Debug("share box not found for invite code")
			return nil, store.ErrShareBoxNotFound
		}
		return nil, NewServiceError("join_share_box", "could not look up invite code", err)
	}

	if !box.AllowParticipation {
		log.Warn("share box closed for participation",
			slog.String("sharebox_id", box.ID.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrParticipationClosed
	}

	exists, err := s.participationRepo.Exists(ctx, userID, box.ID)
	if err != nil {
		return nil, NewServiceError("join_share_box", "could not check participation", err)
	}
	if exists {
		return nil, ErrAlreadyParticipant
	}

	participation, err := domain.NewParticipation(userID, box.ID)
	if err != nil {
		return nil, NewServiceError("join_share_box", "could not create participation", err)
	}
	if err := s.participationRepo.Create(ctx, participation); err != nil {
		// A concurrent join can slip between the existence check and the
		// insert; the unique constraint catches it.
		if errors.Is(err, store.ErrParticipationExists) {
			return nil, ErrAlreadyParticipant
		}
		return nil, NewServiceError("join_share_box", "could not save participation", err)
	}

	log.Info("user joined share box",
		slog.String("sharebox_id", box.ID.String()),
		slog.String("user_id", userID.String()))
	return box, nil
}

// GetShareBoxSettings implements ShareBoxService.GetShareBoxSettings.
func (s *shareBoxServiceImpl) GetShareBoxSettings(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) (*domain.ShareBox, error) {
	box, err := s.boxRepo.GetByID(ctx, shareBoxID)
	if err != nil {
		if errors.Is(err, store.ErrShareBoxNotFound) {
			return nil, store.ErrShareBoxNotFound
		}
		return nil, NewServiceError("get_share_box_settings", "could not load share box", err)
	}

	if err := s.checkParticipation(ctx, userID, shareBoxID); err != nil {
		return nil, err
	}

	return box, nil
}

// UpdateShareBoxName implements ShareBoxService.UpdateShareBoxName.
// Ownership is checked before the new name is validated.
func (s *shareBoxServiceImpl) UpdateShareBoxName(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
	name string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	box, err := s.boxRepo.GetByID(ctx, shareBoxID)
	if err != nil {
		if errors.Is(err, store.ErrShareBoxNotFound) {
			return store.ErrShareBoxNotFound
		}
		return NewServiceError("update_share_box_name", "could not load share box", err)
	}

	if err := s.boxRules.ValidateOwner(box, userID); err != nil {
		log.Warn("non-owner attempted to rename share box",
			slog.String("sharebox_id", shareBoxID.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	if err := s.boxRules.ValidateName(name); err != nil {
		return err
	}

	if err := box.UpdateName(name); err != nil {
		return NewServiceError("update_share_box_name", "could not apply new name", err)
	}

	if err := s.boxRepo.Update(ctx, box); err != nil {
		log.Error("failed to update share box name",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", shareBoxID.String()))
		return NewServiceError("update_share_box_name", "could not save share box", err)
	}

	log.Info("share box renamed",
		slog.String("sharebox_id", shareBoxID.String()))
	return nil
}

// UpdateParticipationSetting implements ShareBoxService.UpdateParticipationSetting.
func (s *shareBoxServiceImpl) UpdateParticipationSetting(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
	allow bool,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	box, err := s.boxRepo.GetByID(ctx, shareBoxID)
	if err != nil {
		if errors.Is(err, store.ErrShareBoxNotFound) {
			return store.ErrShareBoxNotFound
		}
		return NewServiceError("update_participation_setting", "could not load share box", err)
	}

	if err := s.boxRules.ValidateOwner(box, userID); err != nil {
		log.Warn("non-owner attempted to change participation setting",
			slog.String("sharebox_id", shareBoxID.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	box.UpdateAllowParticipation(allow)

	if err := s.boxRepo.Update(ctx, box); err != nil {
		log.Error("failed to update participation setting",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", shareBoxID.String()))
		return NewServiceError("update_participation_setting", "could not save share box", err)
	}

	log.Info("participation setting updated",
		slog.String("sharebox_id", shareBoxID.String()),
		slog.Bool("allow_participation", allow))
	return nil
}

// GetParticipants implements ShareBoxService.GetParticipants.
func (s *shareBoxServiceImpl) GetParticipants(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) ([]*domain.User, error) {
	if err := s.requireShareBox(ctx, shareBoxID); err != nil {
		return nil, err
	}
	if err := s.checkParticipation(ctx, userID, shareBoxID); err != nil {
		return nil, err
	}

	participations, err := s.participationRepo.ListByShareBox(ctx, shareBoxID)
	if err != nil {
		return nil, NewServiceError("get_participants", "could not list participations", err)
	}

	users := make([]*domain.User, 0, len(participations))
	for _, p := range participations {
		user, err := s.userRepo.GetByID(ctx, p.UserID)
		if err != nil {
			return nil, NewServiceError("get_participants", "could not load participant", err)
		}
		users = append(users, user)
	}

	return users, nil
}

// GetShareBoxGifticons implements ShareBoxService.GetShareBoxGifticons.
func (s *shareBoxServiceImpl) GetShareBoxGifticons(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) ([]*domain.Gifticon, error) {
	if err := s.requireShareBox(ctx, shareBoxID); err != nil {
		return nil, err
	}
	if err := s.checkParticipation(ctx, userID, shareBoxID); err != nil {
		return nil, err
	}

	gifticons, err := s.gifticonRepo.ListByShareBox(ctx, shareBoxID)
	if err != nil {
		return nil, NewServiceError("get_share_box_gifticons", "could not list gifticons", err)
	}

	return gifticons, nil
}

// ShareGifticon implements ShareBoxService.ShareGifticon.
// All checks run before any persistence; a failed check leaves the
// gifticon untouched.
func (s *shareBoxServiceImpl) ShareGifticon(
	ctx context.Context,
	userID, shareBoxID, gifticonID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.boxRepo.GetByID(ctx, shareBoxID); err != nil {
		if errors.Is(err, store.ErrShareBoxNotFound) {
			return store.ErrShareBoxNotFound
		}
		return NewServiceError("share_gifticon", "could not load share box", err)
	}

	if err := s.checkParticipation(ctx, userID, shareBoxID); err != nil {
		return err
	}

	gifticon, err := s.loadOwnedGifticon(ctx, userID, gifticonID)
	if err != nil {
		return err
	}

	if err := s.gifticonRules.ValidateSharable(gifticon); err != nil {
		log.Warn("gifticon not sharable",
			slog.String("gifticon_id", gifticonID.String()),
			slog.String("user_id", userID.String()))
		return err
	}

	gifticon.ShareTo(shareBoxID)

	if err := s.gifticonRepo.Update(ctx, gifticon); err != nil {
		log.Error("failed to share gifticon",
			slog.String("error", err.Error()),
			slog.String("gifticon_id", gifticonID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return NewServiceError("share_gifticon", "could not save gifticon", err)
	}

	log.Info("gifticon shared",
		slog.String("gifticon_id", gifticonID.String()),
		slog.String("sharebox_id", shareBoxID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// UnshareGifticon implements ShareBoxService.UnshareGifticon.
// The share box is only existence-checked; its contents are not needed.
func (s *shareBoxServiceImpl) UnshareGifticon(
	ctx context.Context,
	userID, shareBoxID, gifticonID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.requireShareBox(ctx, shareBoxID); err != nil {
		return err
	}

	if err := s.checkParticipation(ctx, userID, shareBoxID); err != nil {
		return err
	}

	gifticon, err := s.loadOwnedGifticon(ctx, userID, gifticonID)
	if err != nil {
		return err
	}

	if err := s.gifticonRules.ValidateSharedIn(gifticon, shareBoxID); err != nil {
		log.Warn("gifticon not shared in this share box",
			slog.String("gifticon_id", gifticonID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return err
	}

	gifticon.Unshare()

	if err := s.gifticonRepo.Update(ctx, gifticon); err != nil {
		log.Error("failed to unshare gifticon",
			slog.String("error", err.Error()),
			slog.String("gifticon_id", gifticonID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return NewServiceError("unshare_gifticon", "could not save gifticon", err)
	}

	log.Info("gifticon unshared",
		slog.String("gifticon_id", gifticonID.String()),
		slog.String("sharebox_id", shareBoxID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// LeaveShareBox implements ShareBoxService.LeaveShareBox.
// The owner dissolves the box; a regular participant withdraws.
func (s *shareBoxServiceImpl) LeaveShareBox(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	box, err := s.boxRepo.GetByID(ctx, shareBoxID)
	if err != nil {
		if errors.Is(err, store.ErrShareBoxNotFound) {
			return store.ErrShareBoxNotFound
		}
		return NewServiceError("leave_share_box", "could not load share box", err)
	}

	if err := s.checkParticipation(ctx, userID, shareBoxID); err != nil {
		return err
	}

	isOwner := s.boxRules.IsOwner(box, userID)

	err = s.runInTransaction(ctx, func(ctx context.Context, repos txRepos) error {
		if isOwner {
			// Dissolving the box: unshare everything first so no gifticon
			// keeps a dangling reference, then drop memberships and the box.
			if _, err := repos.gifticons.UnshareAllByShareBox(ctx, shareBoxID); err != nil {
				return fmt.Errorf("failed to unshare gifticons: %w", err)
			}
			if _, err := repos.participations.DeleteAllByShareBox(ctx, shareBoxID); err != nil {
				return fmt.Errorf("failed to delete participations: %w", err)
			}
			if err := repos.boxes.Delete(ctx, shareBoxID); err != nil {
				return fmt.Errorf("failed to delete share box: %w", err)
			}
			return nil
		}

		// Withdrawing: the user's used gifticons remain shared so the box
		// keeps its usage history.
		if _, err := repos.gifticons.UnshareAvailableByUserAndShareBox(ctx, userID, shareBoxID); err != nil {
			return fmt.Errorf("failed to unshare gifticons: %w", err)
		}
		if err := repos.participations.Delete(ctx, userID, shareBoxID); err != nil {
			return fmt.Errorf("failed to delete participation: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to leave share box",
			slog.String("error", err.Error()),
			slog.String("sharebox_id", shareBoxID.String()),
			slog.String("user_id", userID.String()),
			slog.Bool("owner", isOwner))
		return NewServiceError("leave_share_box", "could not leave share box", err)
	}

	log.Info("user left share box",
		slog.String("sharebox_id", shareBoxID.String()),
		slog.String("user_id", userID.String()),
		slog.Bool("dissolved", isOwner))
	return nil
}

// requireShareBox fails with store.ErrShareBoxNotFound unless the box exists.
func (s *shareBoxServiceImpl) requireShareBox(ctx context.Context, shareBoxID uuid.UUID) error {
	exists, err := s.boxRepo.Exists(ctx, shareBoxID)
	if err != nil {
		return NewServiceError("require_share_box", "could not check share box", err)
	}
	if !exists {
		return store.ErrShareBoxNotFound
	}
	return nil
}

// checkParticipation fails with ErrNotParticipant unless the user
// participates in the box.
func (s *shareBoxServiceImpl) checkParticipation(ctx context.Context, userID, shareBoxID uuid.UUID) error {
	exists, err := s.participationRepo.Exists(ctx, userID, shareBoxID)
	if err != nil {
		return NewServiceError("check_participation", "could not check participation", err)
	}
	if !exists {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Warn("user does not participate in share box",
			slog.String("user_id", userID.String()),
			slog.String("sharebox_id", shareBoxID.String()))
		return ErrNotParticipant
	}
	return nil
}

// loadOwnedGifticon loads the gifticon and verifies the requesting user owns it.
func (s *shareBoxServiceImpl) loadOwnedGifticon(
	ctx context.Context,
	userID, gifticonID uuid.UUID,
) (*domain.Gifticon, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	gifticon, err := s.gifticonRepo.GetByID(ctx, gifticonID)
	if err != nil {
		if errors.Is(err, store.ErrGifticonNotFound) {
			log.Debug("gifticon not found",
				slog.String("gifticon_id", gifticonID.String()))
			return nil, store.ErrGifticonNotFound
		}
		return nil, NewServiceError("load_gifticon", "could not load gifticon", err)
	}

	if !s.gifticonRules.HasAccess(userID, gifticon.UserID) {
		log.Warn("user does not own gifticon",
			slog.String("user_id", userID.String()),
			slog.String("gifticon_id", gifticonID.String()),
			slog.String("owner_id", gifticon.UserID.String()))
		return nil, ErrGifticonNotOwned
	}

	return gifticon, nil
}

// txRepos bundles the transaction-bound repositories handed to a
// transactional function.
type txRepos struct {
	boxes          ShareBoxRepository
	participations ParticipationRepository
	gifticons      GifticonRepository
}

// runInTransaction runs the given function in a database transaction,
// handing it repositories bound to that transaction.
func (s *shareBoxServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(context.Context, txRepos) error,
) error {
	return store.RunInTransaction(ctx, s.boxRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		repos := txRepos{
			boxes:          s.boxRepo.WithTx(tx),
			participations: s.participationRepo.WithTx(tx),
			gifticons:      s.gifticonRepo.WithTx(tx),
		}
		return fn(ctx, repos)
	})
}
