// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveProfile = `INSERT INTO user_profiles (principal, name, role)
    VALUES ($1, $2, $3)
    ON CONFLICT (principal) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role;`

	getProfile = `SELECT principal, name, role
    FROM user_profiles
    WHERE principal = $1;`

	assignRole = `UPDATE user_profiles SET role = $2 WHERE principal = $1;`

	countAdmins = `SELECT count(*) FROM user_profiles WHERE role = 'admin';`

	createChild = `INSERT INTO child_profiles (id, name, is_archived)
    VALUES ($1, $2, FALSE);`

	getChild = `SELECT id, name, is_archived
    FROM child_profiles
    WHERE id = $1;`

	renameChild = `UPDATE child_profiles SET name = $2 WHERE id = $1;`

	archiveChild = `UPDATE child_profiles SET is_archived = TRUE WHERE id = $1;`

	listChildren = `SELECT id, name, is_archived
    FROM child_profiles
    ORDER BY id;`

	upsertLink = `INSERT INTO principal_links (principal, child_id)
    VALUES ($1, $2)
    ON CONFLICT (principal) DO UPDATE SET child_id = EXCLUDED.child_id;`

	deleteLink = `DELETE FROM principal_links WHERE principal = $1;`

	getLinkByPrincipal = `SELECT principal, child_id
    FROM principal_links
    WHERE principal = $1;`

	addBiometric = `INSERT INTO biometric_records (child_id, data_type, data, ts)
    VALUES ($1, $2, $3, $4)
    RETURNING id;`

	addTouch = `INSERT INTO touch_records (child_id, ts, samples)
    VALUES ($1, $2, $3)
    RETURNING id;`

	deleteBiometric = `DELETE FROM biometric_records WHERE id = $1;`

	deleteTouch = `DELETE FROM touch_records WHERE id = $1;`

	listBiometricByChild = `SELECT id, child_id, data_type, data, ts
    FROM biometric_records
    WHERE child_id = $1
    ORDER BY id;`

	listTouchByChild = `SELECT id, child_id, ts, samples
    FROM touch_records
    WHERE child_id = $1
    ORDER BY id;`

	listAllBiometric = `SELECT id, child_id, data_type, data, ts
    FROM biometric_records
    ORDER BY id;`

	listAllTouch = `SELECT id, child_id, ts, samples
    FROM touch_records
    ORDER BY id;`

	setPin = `INSERT INTO guardian_pin (id, hash, salt)
    VALUES (1, $1, $2)
    ON CONFLICT (id) DO UPDATE SET hash = EXCLUDED.hash, salt = EXCLUDED.salt;`

	getPin = `SELECT hash, salt FROM guardian_pin WHERE id = 1;`

	appendAlarmEvent = `INSERT INTO alarm_events (child_profile_id, acknowledged, ts)
    VALUES ($1, FALSE, $2)
    RETURNING id;`

	latestAlarmEvent = `SELECT id, child_profile_id, acknowledged, ts
    FROM alarm_events
    ORDER BY id DESC
    LIMIT 1;`

	acknowledgeLatestAlarmEvent = `UPDATE alarm_events
    SET acknowledged = TRUE
    WHERE id = (
        SELECT id FROM alarm_events
        WHERE acknowledged = FALSE
        ORDER BY id DESC
        LIMIT 1
    );`

	listAlarmEvents = `SELECT id, child_profile_id, acknowledged, ts
    FROM alarm_events
    ORDER BY id;`
)
