package voiceRepository

const (
	queryCreateVoiceCommand = `
		INSERT INTO voice_commands (
			id, user_id, session_id, transcript, action,
			language, parameters, response, route, created_at
		) VALUES (
			:id, :user_id, :session_id, :transcript, :action,
			:language, :parameters, :response, :route, :created_at
		)
	`

	queryGetVoiceCommandsByUserID = `
		SELECT
			id, user_id, session_id, transcript, action,
			language, parameters, response, route, created_at
		FROM voice_commands
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountVoiceCommandsByUserID = `
		SELECT COUNT(*)
		FROM voice_commands
		WHERE user_id = :user_id
	`

	queryCreateSession = `
		INSERT INTO voice_sessions (
			id, user_id, language, state, continuous,
			command_count, failures, created_at, last_activity
		) VALUES (
			:id, :user_id, :language, :state, :continuous,
			:command_count, :failures, :created_at, :last_activity
		)
	`

	queryGetSessionByID = `
		SELECT
			id, user_id, language, state, continuous,
			command_count, failures, created_at, last_activity
		FROM voice_sessions
		WHERE id = :id
	`

	queryUpdateSession = `
		UPDATE voice_sessions
		SET
			language = :language,
			state = :state,
			command_count = :command_count,
			failures = :failures,
			last_activity = :last_activity
		WHERE id = :id
	`
)
