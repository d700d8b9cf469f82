package locale

// Message keys for the embedded translation bundle
const (
	// Help and status
	HelpTitle                    = "help_title"
	HelpIntro                    = "help_intro"
	HelpUserCommands             = "help_user_commands"
	HelpCommandHelp              = "help_command_help"
	HelpCommandAdmin             = "help_command_admin"
	HelpCommandShow              = "help_command_show"
	HelpAdminCommands            = "help_admin_commands"
	HelpCommandUpdate            = "help_command_update"
	HelpCommandNewGroup          = "help_command_newgroup"
	HelpMasterCommands           = "help_master_commands"
	HelpCommandNewLeaderboard    = "help_command_newleaderboard"
	HelpCommandDeleteLeaderboard = "help_command_deleteleaderboard"
	HelpCommandSetScore          = "help_command_setscore"
	HelpStatusNone               = "help_status_none"
	HelpStatusMaster             = "help_status_master"
	HelpStatusAdmin              = "help_status_admin"

	// /admin
	AdminUsage               = "admin_usage"
	AdminBotsRejected        = "admin_bots_rejected"
	AdminIncorrectPassword   = "admin_incorrect_password"
	AdminNowMaster           = "admin_now_master"
	AdminNowLeaderboardAdmin = "admin_now_leaderboard_admin"

	// /newleaderboard
	NewBoardWrongContext        = "newboard_wrong_context"
	NewBoardAlreadyExists       = "newboard_already_exists"
	NewBoardCreated             = "newboard_created"
	NewBoardSecretMessage       = "newboard_secret_message"
	NewBoardSecretDeliverFailed = "newboard_secret_deliver_failed"

	// /deleteleaderboard
	DeleteBoardConfirmPrompt = "deleteboard_confirm_prompt"
	DeleteBoardConfirmButton = "deleteboard_confirm_button"
	DeleteBoardCancelButton  = "deleteboard_cancel_button"
	DeleteBoardDeleted       = "deleteboard_deleted"

	// /newgroup
	GroupUnauthorized = "group_unauthorized"
	GroupAskName      = "group_ask_name"
	GroupDuplicate    = "group_duplicate"
	GroupCreated      = "group_created"
	GroupNotFound     = "group_not_found"

	// /setscore
	SetScoreUsage   = "setscore_usage"
	SetScoreApplied = "setscore_applied"

	// /update
	UpdatePickGroup    = "update_pick_group"
	UpdateNoGroups     = "update_no_groups"
	UpdatePickDelta    = "update_pick_delta"
	UpdateScoreApplied = "update_score_applied"

	// Scoreboard
	ScoreTitle    = "score_title"
	ScoreEmpty    = "score_empty"
	BoardNotFound = "board_not_found"

	// Callbacks
	CallbackUnauthorized = "callback_unauthorized"
	CallbackStale        = "callback_stale"
	CallbackCancelled    = "callback_cancelled"

	// Generic errors
	ErrorGeneric        = "error_generic"
	ErrorMasterRequired = "error_master_required"
	ErrorWrongContext   = "error_wrong_context"
)

// Keys lists every message key; the completeness test localizes each one
var Keys = []string{
	HelpTitle,
	HelpIntro,
	HelpUserCommands,
	HelpCommandHelp,
	HelpCommandAdmin,
	HelpCommandShow,
	HelpAdminCommands,
	HelpCommandUpdate,
	HelpCommandNewGroup,
	HelpMasterCommands,
	HelpCommandNewLeaderboard,
	HelpCommandDeleteLeaderboard,
	HelpCommandSetScore,
	HelpStatusNone,
	HelpStatusMaster,
	HelpStatusAdmin,
	AdminUsage,
	AdminBotsRejected,
	AdminIncorrectPassword,
	AdminNowMaster,
	AdminNowLeaderboardAdmin,
	NewBoardWrongContext,
	NewBoardAlreadyExists,
	NewBoardCreated,
	NewBoardSecretMessage,
	NewBoardSecretDeliverFailed,
	DeleteBoardConfirmPrompt,
	DeleteBoardConfirmButton,
	DeleteBoardCancelButton,
	DeleteBoardDeleted,
	GroupUnauthorized,
	GroupAskName,
	GroupDuplicate,
	GroupCreated,
	GroupNotFound,
	SetScoreUsage,
	SetScoreApplied,
	UpdatePickGroup,
	UpdateNoGroups,
	UpdatePickDelta,
	UpdateScoreApplied,
	ScoreTitle,
	ScoreEmpty,
	BoardNotFound,
	CallbackUnauthorized,
	CallbackStale,
	CallbackCancelled,
	ErrorGeneric,
	ErrorMasterRequired,
	ErrorWrongContext,
}
